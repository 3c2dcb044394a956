package domain

import (
	"context"
	"time"
)

// CaughtPokemon is a user-owned record linking an account to a catalog
// entry. Type is a snapshot of the catalog type at catch time and is never
// re-derived, even if the catalog entry changes later. Name and Height are
// joined from the catalog entry when records are read.
type CaughtPokemon struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	PokemonID int64     `json:"pokemonId"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname,omitempty"`
	Type      string    `json:"type"`
	Height    int64     `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}

// CatchRepository defines the port for caught-record persistence. Every
// mutation filters on (id AND accountID) jointly; when zero rows match,
// Rename and Delete return ErrNotFound without distinguishing an absent
// record from one owned by someone else.
type CatchRepository interface {
	CreateCatch(ctx context.Context, accountID int64, pokemon *Pokemon) (*CaughtPokemon, error)
	ListCatches(ctx context.Context, accountID int64) ([]CaughtPokemon, error)
	RenameCatch(ctx context.Context, accountID, id int64, nickname string) (*CaughtPokemon, error)
	DeleteCatch(ctx context.Context, accountID, id int64) error
}
