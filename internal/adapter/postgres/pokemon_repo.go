package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pokedex/internal/domain"
)

// CreatePokemon inserts a new catalog entry. A name uniqueness violation
// maps to domain.ErrConflict so the caller can treat the race loser as
// "entry now exists".
func (d *DB) CreatePokemon(ctx context.Context, name, typ string, height int64) (*domain.Pokemon, error) {
	var p domain.Pokemon
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO pokemon (name, type, height, created_at) VALUES ($1, $2, $3, $4) RETURNING id, name, type, height, created_at",
		name, typ, height, time.Now().UTC(),
	).Scan(&p.ID, &p.Name, &p.Type, &p.Height, &p.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPokemonByName retrieves a catalog entry by its exact (normalized)
// name. Returns (nil, nil) when no entry exists.
func (d *DB) GetPokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	var p domain.Pokemon
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, type, height, created_at FROM pokemon WHERE name = $1",
		name,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Height, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePokemon applies a partial update; nil fields keep their current
// value. Zero rows matching maps to domain.ErrNotFound.
func (d *DB) UpdatePokemon(ctx context.Context, id int64, upd domain.PokemonUpdate) (*domain.Pokemon, error) {
	var p domain.Pokemon
	err := d.sql.QueryRowContext(ctx,
		`UPDATE pokemon
		 SET name = COALESCE($2, name), type = COALESCE($3, type), height = COALESCE($4, height)
		 WHERE id = $1
		 RETURNING id, name, type, height, created_at`,
		id, upd.Name, upd.Type, upd.Height,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Height, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePokemonByName deletes a catalog entry by name and returns the
// deleted row. Zero rows matching maps to domain.ErrNotFound.
func (d *DB) DeletePokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	var p domain.Pokemon
	err := d.sql.QueryRowContext(ctx,
		"DELETE FROM pokemon WHERE name = $1 RETURNING id, name, type, height, created_at",
		name,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Height, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
