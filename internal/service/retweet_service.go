package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

var (
	ErrAlreadyRetweeted = errors.New("already retweeted this post")
	ErrRetweetOwnPost   = errors.New("cannot retweet your own post that was retweeted")
)

// Retweets never carry the original text; the projection nests it.
const retweetPlaceholder = "retweet"

type RetweetService struct {
	repos     repository.Repos
	projector *Projector
	notifier  Notifier
}

// NewRetweetService creates the retweet service. notifier can be nil.
func NewRetweetService(repos repository.Repos, projector *Projector, notifier Notifier) *RetweetService {
	return &RetweetService{
		repos:     repos,
		projector: projector,
		notifier:  notifier,
	}
}

// Retweet shares a post as a new post record owned by actor.
//
// Retweeting a retweet collapses onto the true original, so a retweet
// record always references a non-retweet post. An actor gets at most one
// retweet per original; the partial unique index on
// (author_email, retweet_of) settles concurrent duplicates, surfaced
// here as ErrAlreadyRetweeted. Retweeting a share of your own post is
// rejected.
func (s *RetweetService) Retweet(ctx context.Context, actor string, postID uuid.UUID) (*domain.FullPost, error) {
	target, err := s.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrPostNotFound
	}

	originalID := target.ID
	if target.RetweetOf != nil {
		originalID = *target.RetweetOf

		original, err := s.repos.Posts.GetByID(ctx, originalID)
		if err != nil {
			return nil, err
		}
		if original != nil && original.AuthorEmail == actor {
			return nil, ErrRetweetOwnPost
		}
	}

	existing, err := s.repos.Posts.GetRetweetByAuthor(ctx, actor, originalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRetweeted
	}

	retweet := &domain.Post{
		ID:          uuid.New(),
		AuthorEmail: actor,
		Content:     retweetPlaceholder,
		RetweetOf:   &originalID,
		CreatedAt:   time.Now(),
	}
	if err := s.repos.Posts.Create(ctx, retweet); err != nil {
		// A concurrent identical retweet won the race.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyRetweeted
		}
		return nil, fmt.Errorf("creating retweet: %w", err)
	}

	full, err := s.projector.FullPost(ctx, retweet.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewPost(full)
	}
	return full, nil
}
