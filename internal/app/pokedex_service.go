package app

import (
	"context"
	"errors"
	"strings"

	"pokedex/internal/domain"
)

var (
	// ErrPokemonExists indicates that a catalog entry with the name exists.
	ErrPokemonExists = errors.New("pokemon already exists")
	// ErrPokemonNotFound indicates that no catalog entry matched.
	ErrPokemonNotFound = errors.New("pokemon not found")
	// ErrLookupFailed indicates that the external catalog could not resolve
	// the name, either because it is unknown or the service is unavailable.
	ErrLookupFailed = errors.New("pokemon lookup failed")
)

// PokedexService is the catalog cache: it resolves creature names against
// local storage and populates missing entries from the external catalog.
type PokedexService struct {
	pokemon domain.PokemonRepository
	fetcher domain.PokemonFetcher
}

// NewPokedexService creates a PokedexService backed by the given repository
// and external fetcher.
func NewPokedexService(pokemon domain.PokemonRepository, fetcher domain.PokemonFetcher) *PokedexService {
	return &PokedexService{pokemon: pokemon, fetcher: fetcher}
}

// NormalizeName canonicalizes a creature name for lookup and storage.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve returns the catalog entry for name, fetching it from the external
// catalog and persisting it on first miss. Note that this is a
// cache-populating read, not a pure one: a miss writes to local storage.
func (s *PokedexService) Resolve(ctx context.Context, name string) (*domain.Pokemon, error) {
	name = NormalizeName(name)

	p, err := s.pokemon.GetPokemonByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	fetched, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, ErrLookupFailed
	}

	created, err := s.pokemon.CreatePokemon(ctx, name, fetched.Type, fetched.Height)
	if errors.Is(err, domain.ErrConflict) {
		// Lost a race against a concurrent first resolve; the entry now
		// exists, so read it back.
		return s.pokemon.GetPokemonByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Ensure returns the catalog entry for name, creating it from the supplied
// attributes when it does not exist and typ is non-empty. An existing entry
// always wins over caller-supplied attributes. When the entry is absent and
// no attributes were supplied, it is resolved from the external catalog.
func (s *PokedexService) Ensure(ctx context.Context, name, typ string, height int64) (*domain.Pokemon, error) {
	name = NormalizeName(name)

	p, err := s.pokemon.GetPokemonByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	if typ == "" {
		return s.Resolve(ctx, name)
	}

	created, err := s.pokemon.CreatePokemon(ctx, name, typ, height)
	if errors.Is(err, domain.ErrConflict) {
		return s.pokemon.GetPokemonByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Add is the manual insert path, independent of lookup.
func (s *PokedexService) Add(ctx context.Context, name, typ string, height int64) (*domain.Pokemon, error) {
	p, err := s.pokemon.CreatePokemon(ctx, NormalizeName(name), typ, height)
	if errors.Is(err, domain.ErrConflict) {
		return nil, ErrPokemonExists
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to a catalog entry by id. Caught records
// keep their snapshot of the old type; it is never re-derived.
func (s *PokedexService) Update(ctx context.Context, id int64, upd domain.PokemonUpdate) (*domain.Pokemon, error) {
	if upd.Name != nil {
		n := NormalizeName(*upd.Name)
		upd.Name = &n
	}
	p, err := s.pokemon.UpdatePokemon(ctx, id, upd)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrPokemonNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deletes a catalog entry by name and returns the deleted entry.
func (s *PokedexService) Remove(ctx context.Context, name string) (*domain.Pokemon, error) {
	p, err := s.pokemon.DeletePokemonByName(ctx, NormalizeName(name))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrPokemonNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
