package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fosel/chirp/internal/domain"
)

type CommentRepo struct {
	q Querier
}

func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_email, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.q.Exec(ctx, query,
		comment.ID, comment.PostID, comment.AuthorEmail, comment.Content, comment.CreatedAt,
	)
	return err
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_email, c.content, c.created_at, u.nickname
		FROM comments c
		JOIN users u ON c.author_email = u.email
		WHERE c.id = $1`

	var c domain.Comment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.PostID, &c.AuthorEmail, &c.Content, &c.CreatedAt, &c.Author.Nickname,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	c.Author.Email = c.AuthorEmail
	return &c, err
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_email, c.content, c.created_at, u.nickname
		FROM comments c
		JOIN users u ON c.author_email = u.email
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC`

	rows, err := r.q.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorEmail, &c.Content, &c.CreatedAt, &c.Author.Nickname); err != nil {
			return nil, err
		}
		c.Author.Email = c.AuthorEmail
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
