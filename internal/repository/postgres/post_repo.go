package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fosel/chirp/internal/domain"
)

type PostRepo struct {
	q Querier
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_email, content, retweet_of, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.q.Exec(ctx, query,
		post.ID, post.AuthorEmail, post.Content, post.RetweetOf, post.CreatedAt,
	)
	return convertConflict(err)
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return r.scanPost(ctx, `SELECT id, author_email, content, retweet_of, created_at FROM posts WHERE id = $1`, id)
}

func (r *PostRepo) GetRetweetByAuthor(ctx context.Context, authorEmail string, originalID uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT id, author_email, content, retweet_of, created_at
		FROM posts
		WHERE author_email = $1 AND retweet_of = $2`
	return r.scanPost(ctx, query, authorEmail, originalID)
}

func (r *PostRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	_, err := r.q.Exec(ctx, `UPDATE posts SET content = $1 WHERE id = $2`, content, id)
	return err
}

func (r *PostRepo) DeleteOwned(ctx context.Context, id uuid.UUID, authorEmail string) error {
	// Owner filter lives in the predicate: deleting someone else's post
	// matches zero rows and succeeds silently.
	_, err := r.q.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_email = $2`, id, authorEmail)
	return err
}

func (r *PostRepo) AddImages(ctx context.Context, postID uuid.UUID, images []domain.Image) error {
	for _, img := range images {
		_, err := r.q.Exec(ctx,
			`INSERT INTO images (id, post_id, src) VALUES ($1, $2, $3)`,
			img.ID, postID, img.Src,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostRepo) ReplaceImages(ctx context.Context, postID uuid.UUID, images []domain.Image) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM images WHERE post_id = $1`, postID); err != nil {
		return err
	}
	return r.AddImages(ctx, postID, images)
}

func (r *PostRepo) ListImages(ctx context.Context, postID uuid.UUID) ([]domain.Image, error) {
	rows, err := r.q.Query(ctx, `SELECT id, post_id, src FROM images WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.PostID, &img.Src); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *PostRepo) AddHashtags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO post_hashtags (post_id, hashtag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostRepo) ReplaceHashtags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM post_hashtags WHERE post_id = $1`, postID); err != nil {
		return err
	}
	return r.AddHashtags(ctx, postID, tagIDs)
}

func (r *PostRepo) ListHashtags(ctx context.Context, postID uuid.UUID) ([]domain.Hashtag, error) {
	query := `
		SELECT h.id, h.name
		FROM hashtags h
		JOIN post_hashtags ph ON ph.hashtag_id = h.id
		WHERE ph.post_id = $1
		ORDER BY h.name`

	rows, err := r.q.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Hashtag
	for rows.Next() {
		var tag domain.Hashtag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *PostRepo) AddLiker(ctx context.Context, postID uuid.UUID, email string) error {
	// Set membership: re-liking converges to the same edge.
	_, err := r.q.Exec(ctx,
		`INSERT INTO likes (post_id, user_email) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, email,
	)
	return err
}

func (r *PostRepo) RemoveLiker(ctx context.Context, postID uuid.UUID, email string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_email = $2`, postID, email)
	return err
}

func (r *PostRepo) ListLikers(ctx context.Context, postID uuid.UUID) ([]domain.PublicUser, error) {
	rows, err := r.q.Query(ctx, `SELECT user_email FROM likes WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likers []domain.PublicUser
	for rows.Next() {
		var liker domain.PublicUser
		if err := rows.Scan(&liker.Email); err != nil {
			return nil, err
		}
		likers = append(likers, liker)
	}
	return likers, rows.Err()
}

func (r *PostRepo) scanPost(ctx context.Context, query string, args ...any) (*domain.Post, error) {
	var p domain.Post
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.AuthorEmail, &p.Content, &p.RetweetOf, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}
