package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
)

type HashtagRepo struct {
	q Querier
}

// FindOrCreate is a single atomic upsert: two concurrent requests for
// the same new name both land on the one surviving row.
func (r *HashtagRepo) FindOrCreate(ctx context.Context, name string) (*domain.Hashtag, error) {
	query := `
		INSERT INTO hashtags (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var tag domain.Hashtag
	err := r.q.QueryRow(ctx, query, uuid.New(), name).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
