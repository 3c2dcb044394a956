package app

import (
	"context"
	"errors"
	"testing"

	"pokedex/internal/domain"
)

type mockCatchRepo struct {
	createFn func(ctx context.Context, accountID int64, pokemon *domain.Pokemon) (*domain.CaughtPokemon, error)
	listFn   func(ctx context.Context, accountID int64) ([]domain.CaughtPokemon, error)
	renameFn func(ctx context.Context, accountID, id int64, nickname string) (*domain.CaughtPokemon, error)
	deleteFn func(ctx context.Context, accountID, id int64) error
}

func (m *mockCatchRepo) CreateCatch(ctx context.Context, accountID int64, pokemon *domain.Pokemon) (*domain.CaughtPokemon, error) {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, pokemon)
	}
	return &domain.CaughtPokemon{ID: 1, AccountID: accountID, PokemonID: pokemon.ID, Name: pokemon.Name, Type: pokemon.Type, Height: pokemon.Height}, nil
}

func (m *mockCatchRepo) ListCatches(ctx context.Context, accountID int64) ([]domain.CaughtPokemon, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID)
	}
	return []domain.CaughtPokemon{}, nil
}

func (m *mockCatchRepo) RenameCatch(ctx context.Context, accountID, id int64, nickname string) (*domain.CaughtPokemon, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, accountID, id, nickname)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatchRepo) DeleteCatch(ctx context.Context, accountID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID, id)
	}
	return domain.ErrNotFound
}

func TestCollectionService_Catch_SnapshotsType(t *testing.T) {
	ctx := context.Background()

	pokemonRepo := &mockPokemonRepo{
		getByNameFn: func(ctx context.Context, name string) (*domain.Pokemon, error) {
			return &domain.Pokemon{ID: 7, Name: name, Type: "electric", Height: 4}, nil
		},
	}

	var snapshotType string
	catches := &mockCatchRepo{
		createFn: func(ctx context.Context, accountID int64, pokemon *domain.Pokemon) (*domain.CaughtPokemon, error) {
			snapshotType = pokemon.Type
			return &domain.CaughtPokemon{ID: 1, AccountID: accountID, PokemonID: pokemon.ID, Type: pokemon.Type}, nil
		},
	}

	svc := NewCollectionService(catches, NewPokedexService(pokemonRepo, &mockFetcher{}))
	caught, err := svc.Catch(ctx, 10, "pikachu", "", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snapshotType != "electric" || caught.Type != "electric" {
		t.Errorf("expected the catalog type to be snapshotted, got %q", snapshotType)
	}
	if caught.AccountID != 10 {
		t.Errorf("expected owner 10, got %d", caught.AccountID)
	}
}

func TestCollectionService_Catch_UnknownNameFails(t *testing.T) {
	ctx := context.Background()

	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, name string) (*domain.Pokemon, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewCollectionService(&mockCatchRepo{}, NewPokedexService(&mockPokemonRepo{}, fetcher))
	_, err := svc.Catch(ctx, 1, "missingno", "", 0)
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}

func TestCollectionService_Rename_NotFoundOrNotOwned(t *testing.T) {
	ctx := context.Background()

	svc := NewCollectionService(&mockCatchRepo{}, NewPokedexService(&mockPokemonRepo{}, &mockFetcher{}))
	_, err := svc.Rename(ctx, 1, 99, "Sparky")
	if !errors.Is(err, ErrCatchNotFound) {
		t.Fatalf("expected ErrCatchNotFound, got %v", err)
	}
}

func TestCollectionService_Release_NotFoundOrNotOwned(t *testing.T) {
	ctx := context.Background()

	// Release fails on zero matched rows, consistent with Rename.
	svc := NewCollectionService(&mockCatchRepo{}, NewPokedexService(&mockPokemonRepo{}, &mockFetcher{}))
	err := svc.Release(ctx, 1, 99)
	if !errors.Is(err, ErrCatchNotFound) {
		t.Fatalf("expected ErrCatchNotFound, got %v", err)
	}
}

func TestCollectionService_Release_Success(t *testing.T) {
	ctx := context.Background()

	catches := &mockCatchRepo{
		deleteFn: func(ctx context.Context, accountID, id int64) error {
			if accountID != 2 || id != 5 {
				t.Errorf("expected joint filter (5, 2), got (%d, %d)", id, accountID)
			}
			return nil
		},
	}

	svc := NewCollectionService(catches, NewPokedexService(&mockPokemonRepo{}, &mockFetcher{}))
	if err := svc.Release(ctx, 2, 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
