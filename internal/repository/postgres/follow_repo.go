package postgres

import (
	"context"

	"github.com/fosel/chirp/internal/domain"
)

type FollowRepo struct {
	q Querier
}

func (r *FollowRepo) Add(ctx context.Context, followerEmail, followeeEmail string) error {
	// Set membership: following twice converges to the same edge.
	_, err := r.q.Exec(ctx,
		`INSERT INTO follows (follower_email, followee_email) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerEmail, followeeEmail,
	)
	return err
}

func (r *FollowRepo) Remove(ctx context.Context, followerEmail, followeeEmail string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM follows WHERE follower_email = $1 AND followee_email = $2`,
		followerEmail, followeeEmail,
	)
	return err
}

func (r *FollowRepo) ListFollowers(ctx context.Context, email string) ([]domain.PublicUser, error) {
	query := `
		SELECT u.email, u.nickname
		FROM follows f
		JOIN users u ON f.follower_email = u.email
		WHERE f.followee_email = $1
		ORDER BY f.created_at`
	return r.listUsers(ctx, query, email)
}

func (r *FollowRepo) ListFollowings(ctx context.Context, email string) ([]domain.PublicUser, error) {
	query := `
		SELECT u.email, u.nickname
		FROM follows f
		JOIN users u ON f.followee_email = u.email
		WHERE f.follower_email = $1
		ORDER BY f.created_at`
	return r.listUsers(ctx, query, email)
}

func (r *FollowRepo) listUsers(ctx context.Context, query, email string) ([]domain.PublicUser, error) {
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.PublicUser
	for rows.Next() {
		var u domain.PublicUser
		if err := rows.Scan(&u.Email, &u.Nickname); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
