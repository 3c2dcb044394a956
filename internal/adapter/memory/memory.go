// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"pokedex/internal/domain"
)

// DB implements an in-memory database storage with the same semantics as
// the postgres adapter: uniqueness violations return domain.ErrConflict
// and zero-row ownership-scoped mutations return domain.ErrNotFound.
type DB struct {
	mu       sync.Mutex
	accounts []*domain.Account
	pokemon  []*domain.Pokemon
	catches  []*domain.CaughtPokemon

	accountIDCounter int64
	pokemonIDCounter int64
	catchIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.PokemonRepository = (*DB)(nil)
var _ domain.CatchRepository = (*DB)(nil)

// --- AccountRepository ---

// CreateAccount adds an account, enforcing email uniqueness.
func (db *DB) CreateAccount(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			return nil, domain.ErrConflict
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.accounts = append(db.accounts, a)

	ret := *a
	return &ret, nil
}

// GetAccountByEmail returns the account with the given email, or nil.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			ret := *a
			return &ret, nil
		}
	}
	return nil, nil
}

// GetAccountByID returns the account with the given id, or nil.
func (db *DB) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			ret := *a
			return &ret, nil
		}
	}
	return nil, nil
}

// --- PokemonRepository ---

// CreatePokemon adds a catalog entry, enforcing name uniqueness.
func (db *DB) CreatePokemon(ctx context.Context, name, typ string, height int64) (*domain.Pokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.pokemon {
		if p.Name == name {
			return nil, domain.ErrConflict
		}
	}

	db.pokemonIDCounter++
	p := &domain.Pokemon{
		ID:        db.pokemonIDCounter,
		Name:      name,
		Type:      typ,
		Height:    height,
		CreatedAt: time.Now().UTC(),
	}
	db.pokemon = append(db.pokemon, p)

	ret := *p
	return &ret, nil
}

// GetPokemonByName returns the catalog entry with the given name, or nil.
func (db *DB) GetPokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.pokemon {
		if p.Name == name {
			ret := *p
			return &ret, nil
		}
	}
	return nil, nil
}

// UpdatePokemon applies a partial update to a catalog entry by id.
func (db *DB) UpdatePokemon(ctx context.Context, id int64, upd domain.PokemonUpdate) (*domain.Pokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.pokemon {
		if p.ID != id {
			continue
		}
		if upd.Name != nil {
			for _, other := range db.pokemon {
				if other.ID != id && other.Name == *upd.Name {
					return nil, domain.ErrConflict
				}
			}
			p.Name = *upd.Name
		}
		if upd.Type != nil {
			p.Type = *upd.Type
		}
		if upd.Height != nil {
			p.Height = *upd.Height
		}
		ret := *p
		return &ret, nil
	}
	return nil, domain.ErrNotFound
}

// DeletePokemonByName removes a catalog entry by name.
func (db *DB) DeletePokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, p := range db.pokemon {
		if p.Name == name {
			db.pokemon = append(db.pokemon[:i], db.pokemon[i+1:]...)
			ret := *p
			return &ret, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- CatchRepository ---

// CreateCatch adds a caught record for the account, snapshotting the
// catalog entry's type.
func (db *DB) CreateCatch(ctx context.Context, accountID int64, pokemon *domain.Pokemon) (*domain.CaughtPokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.catchIDCounter++
	c := &domain.CaughtPokemon{
		ID:        db.catchIDCounter,
		AccountID: accountID,
		PokemonID: pokemon.ID,
		Name:      pokemon.Name,
		Type:      pokemon.Type,
		Height:    pokemon.Height,
		CreatedAt: time.Now().UTC(),
	}
	db.catches = append(db.catches, c)

	ret := *c
	return &ret, nil
}

// ListCatches returns the account's caught records with joined catalog data.
func (db *DB) ListCatches(ctx context.Context, accountID int64) ([]domain.CaughtPokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := []domain.CaughtPokemon{}
	for _, c := range db.catches {
		if c.AccountID != accountID {
			continue
		}
		ret := *c
		db.joinPokemonLocked(&ret)
		out = append(out, ret)
	}
	return out, nil
}

// RenameCatch updates the nickname under the joint (id, accountID) filter.
func (db *DB) RenameCatch(ctx context.Context, accountID, id int64, nickname string) (*domain.CaughtPokemon, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, c := range db.catches {
		if c.ID == id && c.AccountID == accountID {
			c.Nickname = nickname
			ret := *c
			db.joinPokemonLocked(&ret)
			return &ret, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteCatch removes a caught record under the joint (id, accountID) filter.
func (db *DB) DeleteCatch(ctx context.Context, accountID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, c := range db.catches {
		if c.ID == id && c.AccountID == accountID {
			db.catches = append(db.catches[:i], db.catches[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// joinPokemonLocked fills the catalog name and height. The snapshotted
// type is left as caught, matching the SQL join.
func (db *DB) joinPokemonLocked(c *domain.CaughtPokemon) {
	for _, p := range db.pokemon {
		if p.ID == c.PokemonID {
			c.Name = p.Name
			c.Height = p.Height
			return
		}
	}
}
