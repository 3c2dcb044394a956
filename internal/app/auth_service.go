// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"

	"pokedex/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken indicates that the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountNotFound indicates that no account exists for the email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates that the provided password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	accounts domain.AccountRepository
	tokens   *TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

// Register hashes the password and persists a new account. Uniqueness is
// enforced by the storage layer's constraint on email, not by a prior
// existence check.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.CreateAccount(ctx, email, string(hash))
	if errors.Is(err, domain.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies the credentials and issues a session token. The bcrypt
// comparison is constant-time.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrAccountNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(account.ID)
}
