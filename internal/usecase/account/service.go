package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
	"newswire/internal/service/password"
	"newswire/internal/service/token"
)

// Service provides account registration, authentication and credential
// resolution. It holds the account repository and the token service.
type Service struct {
	Repo   repository.AccountRepository
	Tokens *token.Service
}

// Register creates a new account with a hashed password.
// Returns ErrDuplicateIdentity if the username is already taken.
// Returns a ValidationError if the username is invalid.
func (s *Service) Register(ctx context.Context, username, plaintext string) error {
	if err := entity.ValidateUsername(username); err != nil {
		return err
	}
	if plaintext == "" {
		return &entity.ValidationError{Field: "password", Message: "is required"}
	}

	existing, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}
	if existing != nil {
		return ErrDuplicateIdentity
	}

	digest, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	acct := &entity.Account{
		Username:     username,
		PasswordHash: digest,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		// the unique constraint catches registrations racing past the
		// find-then-create check
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("create account: %w", err)
	}

	metrics.AccountsRegisteredTotal.Inc()
	return nil
}

// Authenticate checks a username/password pair and issues a session credential.
// Unknown usernames and wrong passwords both fail with ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, plaintext string) (string, error) {
	acct, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}
	if acct == nil || !password.Verify(plaintext, acct.PasswordHash) {
		metrics.RecordAuthAttempt(false)
		return "", ErrInvalidCredentials
	}

	cred, err := s.Tokens.Issue(acct.Username)
	if err != nil {
		return "", fmt.Errorf("issue credential: %w", err)
	}
	metrics.RecordAuthAttempt(true)
	return cred, nil
}

// Resolve verifies a session credential and resolves its subject to a stored
// account. A credential whose subject no longer exists is rejected with
// token.ErrUnknownSubject.
func (s *Service) Resolve(ctx context.Context, credential string) (*entity.Account, error) {
	subject, err := s.Tokens.Verify(credential)
	if err != nil {
		return nil, err
	}

	acct, err := s.Repo.FindByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve subject: %w", err)
	}
	if acct == nil {
		return nil, token.ErrUnknownSubject
	}
	return acct, nil
}
