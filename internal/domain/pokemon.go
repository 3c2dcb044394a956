package domain

import (
	"context"
	"time"
)

// Pokemon is a shared catalog entry describing a creature. Entries are
// reference data: created lazily on first lookup or via the manual admin
// path, and never touched by the catch workflow afterwards.
type Pokemon struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Height    int64     `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}

// PokemonUpdate carries the optional fields of a partial catalog update.
// Nil fields are left unchanged.
type PokemonUpdate struct {
	Name   *string
	Type   *string
	Height *int64
}

// PokemonRepository defines the port for catalog persistence. GetByName
// returns (nil, nil) when no entry exists. CreatePokemon relies on the
// unique constraint on name and returns ErrConflict when it is violated.
type PokemonRepository interface {
	CreatePokemon(ctx context.Context, name, typ string, height int64) (*Pokemon, error)
	GetPokemonByName(ctx context.Context, name string) (*Pokemon, error)
	UpdatePokemon(ctx context.Context, id int64, upd PokemonUpdate) (*Pokemon, error)
	DeletePokemonByName(ctx context.Context, name string) (*Pokemon, error)
}

// PokemonFetcher is the port for the external creature catalog. Fetch
// returns the catalog attributes for a creature name or an error when the
// upstream service fails or does not know the name.
type PokemonFetcher interface {
	Fetch(ctx context.Context, name string) (*Pokemon, error)
}
