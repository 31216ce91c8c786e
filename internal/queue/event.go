// Package queue defines message payloads exchanged over the message broker.
package queue

// Catalog event actions.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
    ActionDeleted = "deleted"
)

// PlantEvent is published whenever the catalog changes.  It carries enough
// information for downstream consumers to log, notify, or trigger analytics
// without querying the primary database.
type PlantEvent struct {
    Action     string   `json:"action"`
    PlantID    uint64   `json:"plant_id"`
    Name       string   `json:"name"`
    Price      float64  `json:"price"`
    Categories []string `json:"categories"`
    AdminID    uint64   `json:"admin_id,omitempty"`
    OccurredAt string   `json:"occurred_at"`
}
