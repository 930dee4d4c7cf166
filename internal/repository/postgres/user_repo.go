package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fosel/chirp/internal/domain"
)

type UserRepo struct {
	q Querier
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, nickname, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.q.Exec(ctx, query,
		user.Email, user.Nickname, user.PasswordHash, user.CreatedAt,
	)
	return convertConflict(err)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT email, nickname, password_hash, created_at FROM users WHERE email = $1`

	var u domain.User
	err := r.q.QueryRow(ctx, query, email).Scan(
		&u.Email, &u.Nickname, &u.PasswordHash, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) UpdateNickname(ctx context.Context, email, nickname string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET nickname = $1 WHERE email = $2`, nickname, email)
	return err
}

func (r *UserRepo) ListPostIDs(ctx context.Context, email string) ([]uuid.UUID, error) {
	query := `SELECT id FROM posts WHERE author_email = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
