package base

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

// Repository holds the pool and the query helpers shared by all tables.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

func (r *Repository) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return r.pool.Query(ctx, query, args...)
}

// ExecAffected runs a command and returns the number of affected rows.
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExecOne runs a single-row update and reports service.ErrNotFound when no
// row matched.
func (r *Repository) ExecOne(ctx context.Context, query string, args ...any) error {
	n, err := r.ExecAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is pgx's "no rows" result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// MapNotFound turns pgx.ErrNoRows into service.ErrNotFound and leaves other
// errors untouched.
func MapNotFound(err error) error {
	if IsNotFound(err) {
		return service.ErrNotFound
	}
	return err
}

// ValidID reports whether id fits a UUID column. Ids read back from callback
// data are arbitrary text.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
