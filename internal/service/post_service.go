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
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the post author can edit this post")
)

type PostService struct {
	repos     repository.Repos
	atomic    repository.Atomic
	projector *Projector
	notifier  Notifier
}

// NewPostService creates the content service. notifier can be nil.
func NewPostService(repos repository.Repos, atomic repository.Atomic, projector *Projector, notifier Notifier) *PostService {
	return &PostService{
		repos:     repos,
		atomic:    atomic,
		projector: projector,
		notifier:  notifier,
	}
}

// CreatePost writes the post, its resolved hashtags, and its images as
// one transaction; any failure rolls the whole post back.
func (s *PostService) CreatePost(ctx context.Context, actor, content string, imageSrcs []string) (*domain.FullPost, error) {
	post := &domain.Post{
		ID:          uuid.New(),
		AuthorEmail: actor,
		Content:     content,
		CreatedAt:   time.Now(),
	}

	err := s.atomic.InTx(ctx, func(r repository.Repos) error {
		if err := r.Posts.Create(ctx, post); err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		tagIDs, err := resolveHashtags(ctx, r.Hashtags, content)
		if err != nil {
			return err
		}
		// Zero extracted tags means no association at all, not a clear.
		if len(tagIDs) > 0 {
			if err := r.Posts.AddHashtags(ctx, post.ID, tagIDs); err != nil {
				return fmt.Errorf("attaching hashtags: %w", err)
			}
		}

		if len(imageSrcs) > 0 {
			if err := r.Posts.AddImages(ctx, post.ID, newImages(post.ID, imageSrcs)); err != nil {
				return fmt.Errorf("attaching images: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.projector.FullPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewPost(full)
	}
	return full, nil
}

// EditPost replaces the post content; the hashtag set is replaced only
// when the new content mentions tags, and the image set is replaced only
// when imageSrcs is provided (non-nil). Editing requires authorship.
func (s *PostService) EditPost(ctx context.Context, actor string, postID uuid.UUID, content string, imageSrcs []string) (*domain.FullPost, error) {
	post, err := s.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorEmail != actor {
		return nil, ErrNotPostAuthor
	}

	err = s.atomic.InTx(ctx, func(r repository.Repos) error {
		if err := r.Posts.UpdateContent(ctx, postID, content); err != nil {
			return fmt.Errorf("updating post: %w", err)
		}

		tagIDs, err := resolveHashtags(ctx, r.Hashtags, content)
		if err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := r.Posts.ReplaceHashtags(ctx, postID, tagIDs); err != nil {
				return fmt.Errorf("replacing hashtags: %w", err)
			}
		}

		if imageSrcs != nil {
			if err := r.Posts.ReplaceImages(ctx, postID, newImages(postID, imageSrcs)); err != nil {
				return fmt.Errorf("replacing images: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.projector.FullPost(ctx, postID)
}

// DeletePost deletes the post only when actor authored it. Matching
// zero rows is a silent success.
func (s *PostService) DeletePost(ctx context.Context, actor string, postID uuid.UUID) error {
	return s.repos.Posts.DeleteOwned(ctx, postID, actor)
}

// GetPost returns the full projection for an anonymous read.
func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*domain.FullPost, error) {
	full, err := s.projector.FullPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, ErrPostNotFound
	}
	return full, nil
}

// AddComment attaches a comment to an existing post and returns it
// joined with the author's public fields.
func (s *PostService) AddComment(ctx context.Context, actor string, postID uuid.UUID, content string) (*domain.Comment, error) {
	post, err := s.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &domain.Comment{
		ID:          uuid.New(),
		PostID:      postID,
		AuthorEmail: actor,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := s.repos.Comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	full, err := s.repos.Comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewComment(post.AuthorEmail, full)
	}
	return full, nil
}

// Like adds the (actor, post) like edge; liking twice has no extra effect.
func (s *PostService) Like(ctx context.Context, actor string, postID uuid.UUID) error {
	post, err := s.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.repos.Posts.AddLiker(ctx, postID, actor); err != nil {
		return fmt.Errorf("liking post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyLike(post.AuthorEmail, postID, actor)
	}
	return nil
}

// Unlike removes the like edge; removing a missing edge is a no-op.
func (s *PostService) Unlike(ctx context.Context, actor string, postID uuid.UUID) error {
	post, err := s.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	return s.repos.Posts.RemoveLiker(ctx, postID, actor)
}

func newImages(postID uuid.UUID, srcs []string) []domain.Image {
	images := make([]domain.Image, 0, len(srcs))
	for _, src := range srcs {
		images = append(images, domain.Image{ID: uuid.New(), PostID: postID, Src: src})
	}
	return images
}
