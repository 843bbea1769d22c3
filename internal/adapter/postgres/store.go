package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"resto-ads/internal/core/port"
)

// DB is the subset of *pgxpool.Pool used by the store. pgxmock pools
// satisfy it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store implements port.Store on PostgreSQL.
type Store struct {
	db DB
}

var _ port.Store = (*Store)(nil)

// NewStore returns a store backed by db, usually a *pgxpool.Pool.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

const (
	codeUniqueViolation  = "23505"
	codeInvalidTextValue = "22P02"
)

// mapErr translates driver errors into port sentinels. A malformed uuid
// can never match a row and is reported as not found.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", port.ErrConflict, pgErr.ConstraintName)
		case codeInvalidTextValue:
			return port.ErrNotFound
		}
	}
	return err
}

// affected turns an update or delete that touched no row into ErrNotFound.
func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}
