package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) repository.AccountRepository {
	return &AccountRepo{db: db}
}

func (repo *AccountRepo) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = $1`
	var account entity.Account
	err := repo.db.QueryRowContext(ctx, query, username).Scan(&account.ID,
		&account.Username, &account.PasswordHash, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUsername: %w", err)
	}
	return &account, nil
}

func (repo *AccountRepo) Create(ctx context.Context, account *entity.Account) error {
	const query = `
INSERT INTO users (username, password_hash, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, account.Username,
		account.PasswordHash, account.CreatedAt).Scan(&account.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		// a concurrent registration won the race for this username
		return fmt.Errorf("Create: %w", repository.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
