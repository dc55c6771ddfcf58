package repository

import (
	"context"
	"errors"

	"newswire/internal/domain/entity"
)

// ErrDuplicateKey reports that a write violated a uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// AccountRepository is the persistence port for user accounts.
type AccountRepository interface {
	// FindByUsername retrieves an account by its unique username.
	// Returns (nil, nil) if no account with that name exists.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)
	// Create persists a new account and fills in its assigned ID.
	// The password must already be hashed by the caller.
	// Returns an error wrapping ErrDuplicateKey if the username is taken.
	Create(ctx context.Context, account *entity.Account) error
}
