// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account represents a registered user of the pokedex.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRepository defines the port for account persistence operations.
// Create relies on the storage layer's unique constraint on email and
// returns ErrConflict when it is violated; there is no prior existence
// check.
type AccountRepository interface {
	CreateAccount(ctx context.Context, email, passwordHash string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
}
