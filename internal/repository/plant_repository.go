package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/hmisra/plant-store/internal/model"
)

// PlantRepo persists catalog records in the 'plants' table.  Categories are
// stored as a JSON array in a single column so the set round-trips without a
// join table; MySQL's JSON type rejects malformed values at write time.
type PlantRepo struct{ DB *sql.DB }

func NewPlantRepo(db *sql.DB) *PlantRepo { return &PlantRepo{DB: db} }

// Create inserts a plant and returns the stored record, including the
// database-populated timestamps.
func (r *PlantRepo) Create(ctx context.Context, p model.Plant) (model.Plant, error) {
	cats, err := json.Marshal(p.Categories)
	if err != nil {
		return model.Plant{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO plants (name, price, description, categories, availability, image) VALUES (?,?,?,?,?,?)",
		p.Name, p.Price, p.Description, cats, p.Availability, p.Image)
	if err != nil {
		return model.Plant{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Plant{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetAll returns every plant in insertion order.  An empty catalog yields an
// empty (non-nil) slice so the API serializes [] rather than null.
func (r *PlantRepo) GetAll(ctx context.Context) ([]model.Plant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,price,description,categories,availability,image,created_at,updated_at FROM plants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plants := []model.Plant{}
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// GetByID fetches a single plant.  ErrNotFound signals an absent id.
func (r *PlantRepo) GetByID(ctx context.Context, id uint64) (model.Plant, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,name,price,description,categories,availability,image,created_at,updated_at FROM plants WHERE id=? LIMIT 1",
		id)
	p, err := scanPlant(row)
	if err == sql.ErrNoRows {
		return model.Plant{}, ErrNotFound
	}
	return p, err
}

// Update applies a partial update and returns the refreshed record.  The SET
// clause is built from the fields actually present in the update so omitted
// fields keep their stored values.  Updating an absent id, or sending an
// update with no recognized fields for an absent id, yields ErrNotFound.
func (r *PlantRepo) Update(ctx context.Context, id uint64, u model.PlantUpdate) (model.Plant, error) {
	set := []string{}
	args := []any{}

	if u.Name != nil {
		set = append(set, "name=?")
		args = append(args, *u.Name)
	}
	if u.Price != nil {
		set = append(set, "price=?")
		args = append(args, *u.Price)
	}
	if u.Description != nil {
		set = append(set, "description=?")
		args = append(args, *u.Description)
	}
	if u.Categories != nil {
		cats, err := json.Marshal(u.Categories)
		if err != nil {
			return model.Plant{}, err
		}
		set = append(set, "categories=?")
		args = append(args, cats)
	}
	if u.Availability != nil {
		set = append(set, "availability=?")
		args = append(args, *u.Availability)
	}
	if u.Image != nil {
		set = append(set, "image=?")
		args = append(args, *u.Image)
	}

	if len(set) == 0 {
		// Nothing to change; still report whether the record exists.
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE plants SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
		return model.Plant{}, err
	}
	// RowsAffected cannot distinguish a missing row from a no-op update, so
	// the follow-up read decides; it yields ErrNotFound for absent ids.
	return r.GetByID(ctx, id)
}

// Delete removes a plant by id.  ErrNotFound signals an absent id.
func (r *PlantRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM plants WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanPlant(s scanner) (model.Plant, error) {
	var p model.Plant
	var cats []byte
	if err := s.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &cats,
		&p.Availability, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Plant{}, err
	}
	if err := json.Unmarshal(cats, &p.Categories); err != nil {
		return model.Plant{}, err
	}
	return p, nil
}
