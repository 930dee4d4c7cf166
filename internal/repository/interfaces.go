package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
)

// ErrConflict is returned by implementations when a write loses a race
// against a uniqueness constraint (duplicate email, duplicate retweet).
// Callers decide whether to surface it or reuse the surviving row.
var ErrConflict = errors.New("conflicts with an existing row")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateNickname(ctx context.Context, email, nickname string) error
	ListPostIDs(ctx context.Context, email string) ([]uuid.UUID, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	// GetRetweetByAuthor finds the retweet record author created for an
	// original post, if any.
	GetRetweetByAuthor(ctx context.Context, authorEmail string, originalID uuid.UUID) (*domain.Post, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	// DeleteOwned deletes the post only when authorEmail matches; deleting
	// zero rows is not an error.
	DeleteOwned(ctx context.Context, id uuid.UUID, authorEmail string) error

	AddImages(ctx context.Context, postID uuid.UUID, images []domain.Image) error
	ReplaceImages(ctx context.Context, postID uuid.UUID, images []domain.Image) error
	ListImages(ctx context.Context, postID uuid.UUID) ([]domain.Image, error)

	AddHashtags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	ReplaceHashtags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	ListHashtags(ctx context.Context, postID uuid.UUID) ([]domain.Hashtag, error)

	AddLiker(ctx context.Context, postID uuid.UUID, email string) error
	RemoveLiker(ctx context.Context, postID uuid.UUID, email string) error
	ListLikers(ctx context.Context, postID uuid.UUID) ([]domain.PublicUser, error)
}

type HashtagRepository interface {
	// FindOrCreate resolves a normalized tag name to its row, creating it
	// if absent. Concurrent calls with the same name converge on one row.
	FindOrCreate(ctx context.Context, name string) (*domain.Hashtag, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// ListByPost returns comments newest-first with author fields joined.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
}

type FollowRepository interface {
	Add(ctx context.Context, followerEmail, followeeEmail string) error
	Remove(ctx context.Context, followerEmail, followeeEmail string) error
	ListFollowers(ctx context.Context, email string) ([]domain.PublicUser, error)
	ListFollowings(ctx context.Context, email string) ([]domain.PublicUser, error)
}

// Repos bundles every repository over one querier (pool or transaction).
type Repos struct {
	Users    UserRepository
	Posts    PostRepository
	Hashtags HashtagRepository
	Comments CommentRepository
	Follows  FollowRepository
}

// Atomic runs fn with all repositories bound to a single transaction;
// fn returning an error rolls every write back.
type Atomic interface {
	InTx(ctx context.Context, fn func(r Repos) error) error
}
