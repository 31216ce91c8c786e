package model

import (
    "encoding/json"
    "time"
)

// Category is a single catalog category name.  Older clients sent categories
// as objects like {"name": "Indoor"} while newer ones send bare strings, so
// the type accepts both shapes on decode and always carries the plain name.
// Downstream code never has to branch on the wire shape.
type Category string

// UnmarshalJSON accepts either a JSON string or an object with a "name"
// field.  Anything else is a decode error.
func (c *Category) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err == nil {
        *c = Category(s)
        return nil
    }
    var obj struct {
        Name string `json:"name"`
    }
    if err := json.Unmarshal(b, &obj); err != nil {
        return err
    }
    *c = Category(obj.Name)
    return nil
}

// String returns the category name.
func (c Category) String() string { return string(c) }

// Plant represents a catalog record as stored in the `plants` table and as
// serialized on the public API.  Categories are persisted as a JSON array in
// a single column; timestamps are populated by the database.
type Plant struct {
    ID           uint64     `json:"id"`
    Name         string     `json:"name"`
    Price        float64    `json:"price"`
    Description  string     `json:"description"`
    Categories   []Category `json:"categories"`
    Availability bool       `json:"availability"`
    Image        string     `json:"image"`
    CreatedAt    time.Time  `json:"createdAt"`
    UpdatedAt    time.Time  `json:"updatedAt"`
}

// PlantUpdate carries a partial update.  Nil pointers (and a nil Categories
// slice) mean "leave unchanged"; the repository only touches columns whose
// field is present.
type PlantUpdate struct {
    Name         *string    `json:"name"`
    Price        *float64   `json:"price"`
    Description  *string    `json:"description"`
    Categories   []Category `json:"categories"`
    Availability *bool      `json:"availability"`
    Image        *string    `json:"image"`
}
