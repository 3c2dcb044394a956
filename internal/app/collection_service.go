package app

import (
	"context"
	"errors"

	"pokedex/internal/domain"
)

// ErrCatchNotFound indicates that no caught record matched the joint
// (id, owner) predicate. It deliberately does not distinguish a record
// that does not exist from one owned by another account.
var ErrCatchNotFound = errors.New("catch not found")

// CollectionService is the ownership-scoped ledger of caught pokemon.
// Every operation takes the authenticated account id attached by the
// access gate; callers can never act on another account's records.
type CollectionService struct {
	catches domain.CatchRepository
	pokedex *PokedexService
}

// NewCollectionService creates a CollectionService backed by the given
// repository and catalog cache.
func NewCollectionService(catches domain.CatchRepository, pokedex *PokedexService) *CollectionService {
	return &CollectionService{catches: catches, pokedex: pokedex}
}

// Catch records a creature for the account. The catalog entry is resolved
// or created first; its type classification is copied into the new record
// and kept even if the catalog entry changes later.
func (s *CollectionService) Catch(ctx context.Context, accountID int64, name, typ string, height int64) (*domain.CaughtPokemon, error) {
	p, err := s.pokedex.Ensure(ctx, name, typ, height)
	if err != nil {
		return nil, err
	}
	return s.catches.CreateCatch(ctx, accountID, p)
}

// List returns the account's caught records with joined catalog data,
// freshly computed on each call.
func (s *CollectionService) List(ctx context.Context, accountID int64) ([]domain.CaughtPokemon, error) {
	return s.catches.ListCatches(ctx, accountID)
}

// Rename updates the nickname of one of the account's caught records.
func (s *CollectionService) Rename(ctx context.Context, accountID, id int64, nickname string) (*domain.CaughtPokemon, error) {
	c, err := s.catches.RenameCatch(ctx, accountID, id, nickname)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrCatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release deletes one of the account's caught records. Zero rows matching
// the joint predicate is an error, consistent with Rename.
func (s *CollectionService) Release(ctx context.Context, accountID, id int64) error {
	err := s.catches.DeleteCatch(ctx, accountID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrCatchNotFound
	}
	return err
}
