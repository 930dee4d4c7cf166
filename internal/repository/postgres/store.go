package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fosel/chirp/internal/repository"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so
// every repo can run against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repos returns repositories bound to the pool (auto-commit).
func (s *Store) Repos() repository.Repos {
	return newRepos(s.pool)
}

// InTx implements repository.Atomic.
func (s *Store) InTx(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newRepos(tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func newRepos(q Querier) repository.Repos {
	return repository.Repos{
		Users:    &UserRepo{q: q},
		Posts:    &PostRepo{q: q},
		Hashtags: &HashtagRepo{q: q},
		Comments: &CommentRepo{q: q},
		Follows:  &FollowRepo{q: q},
	}
}

// uniqueViolation is the SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// convertConflict maps unique violations to repository.ErrConflict so
// services can resolve races without depending on pgx.
func convertConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
