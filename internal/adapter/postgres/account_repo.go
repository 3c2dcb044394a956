package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pokedex/internal/domain"
)

// CreateAccount inserts a new account. The unique constraint on email is
// the only uniqueness check; a violation maps to domain.ErrConflict.
func (d *DB) CreateAccount(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id, email, password_hash, created_at",
		email, passwordHash, time.Now().UTC(),
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByEmail retrieves an account by email. Returns (nil, nil) when
// no account exists.
func (d *DB) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1",
		email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByID retrieves an account by id. Returns (nil, nil) when no
// account exists.
func (d *DB) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
