package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"newswire/internal/domain/entity"
	pg "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/repository"
)

func TestAccountRepo_FindByUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Account{
		ID: 1, Username: "alice", PasswordHash: "$2a$10$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "password_hash", "created_at",
		}).AddRow(want.ID, want.Username, want.PasswordHash, want.CreatedAt))

	repo := pg.NewAccountRepo(db)
	got, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAccountRepo_FindByUsernameNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "password_hash", "created_at",
		}))

	repo := pg.NewAccountRepo(db)
	got, err := repo.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FindByUsername err=%v", err)
	}
	if got != nil {
		t.Fatalf("want nil account, got %+v", got)
	}
}

func TestAccountRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	account := &entity.Account{
		Username: "bob", PasswordHash: "$2a$10$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "$2a$10$hash", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := pg.NewAccountRepo(db)
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if account.ID != 5 {
		t.Fatalf("ID not filled: %d", account.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAccountRepo_CreateUniqueViolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	account := &entity.Account{
		Username: "bob", PasswordHash: "$2a$10$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "$2a$10$hash", now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	repo := pg.NewAccountRepo(db)
	err := repo.Create(context.Background(), account)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
