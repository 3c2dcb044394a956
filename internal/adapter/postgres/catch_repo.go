package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pokedex/internal/domain"
)

// CreateCatch inserts a caught record for the account, copying the catalog
// entry's type at catch time.
func (d *DB) CreateCatch(ctx context.Context, accountID int64, pokemon *domain.Pokemon) (*domain.CaughtPokemon, error) {
	c := domain.CaughtPokemon{
		AccountID: accountID,
		PokemonID: pokemon.ID,
		Name:      pokemon.Name,
		Type:      pokemon.Type,
		Height:    pokemon.Height,
	}
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO catches (account_id, pokemon_id, nickname, type, created_at) VALUES ($1, $2, NULL, $3, $4) RETURNING id, created_at",
		accountID, pokemon.ID, pokemon.Type, time.Now().UTC(),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCatches returns the account's caught records joined with catalog
// name and height.
func (d *DB) ListCatches(ctx context.Context, accountID int64) ([]domain.CaughtPokemon, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT c.id, c.account_id, c.pokemon_id, p.name, COALESCE(c.nickname, ''), c.type, p.height, c.created_at
		 FROM catches c JOIN pokemon p ON p.id = c.pokemon_id
		 WHERE c.account_id = $1
		 ORDER BY c.id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.CaughtPokemon{}
	for rows.Next() {
		var c domain.CaughtPokemon
		if err := rows.Scan(&c.ID, &c.AccountID, &c.PokemonID, &c.Name, &c.Nickname, &c.Type, &c.Height, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RenameCatch updates the nickname under the joint (id, account_id)
// predicate in a single statement. Zero rows matching maps to
// domain.ErrNotFound regardless of whether the record is absent or owned
// by another account.
func (d *DB) RenameCatch(ctx context.Context, accountID, id int64, nickname string) (*domain.CaughtPokemon, error) {
	var c domain.CaughtPokemon
	err := d.sql.QueryRowContext(ctx,
		`UPDATE catches c SET nickname = $3
		 FROM pokemon p
		 WHERE c.id = $1 AND c.account_id = $2 AND p.id = c.pokemon_id
		 RETURNING c.id, c.account_id, c.pokemon_id, p.name, COALESCE(c.nickname, ''), c.type, p.height, c.created_at`,
		id, accountID, nickname,
	).Scan(&c.ID, &c.AccountID, &c.PokemonID, &c.Name, &c.Nickname, &c.Type, &c.Height, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCatch removes a caught record under the joint (id, account_id)
// predicate. Zero rows affected maps to domain.ErrNotFound.
func (d *DB) DeleteCatch(ctx context.Context, accountID, id int64) error {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM catches WHERE id = $1 AND account_id = $2", id, accountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
