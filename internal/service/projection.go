package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

// Projector assembles read-side views by composing repository reads.
// All methods return (nil, nil) when the root entity doesn't exist.
type Projector struct {
	repos repository.Repos
}

func NewProjector(repos repository.Repos) *Projector {
	return &Projector{repos: repos}
}

// FullPost builds the complete post view: author, images, comments
// (newest-first, each with its author), likers, and for retweets the
// original post nested with its own author and images.
func (p *Projector) FullPost(ctx context.Context, id uuid.UUID) (*domain.FullPost, error) {
	post, err := p.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	full, err := p.assemblePost(ctx, post)
	if err != nil {
		return nil, err
	}

	if post.RetweetOf != nil {
		original, err := p.repos.Posts.GetByID(ctx, *post.RetweetOf)
		if err != nil {
			return nil, err
		}
		if original != nil {
			nested, err := p.assembleNested(ctx, original)
			if err != nil {
				return nil, err
			}
			full.Retweet = nested
		}
	}

	return full, nil
}

// FullUser builds the self-profile view: post IDs only plus follower
// and following emails. The password hash never leaves the domain type.
func (p *Projector) FullUser(ctx context.Context, email string) (*domain.FullUser, error) {
	user, err := p.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	postIDs, followings, followers, err := p.userRelations(ctx, email)
	if err != nil {
		return nil, err
	}

	return &domain.FullUser{
		User:       *user,
		PostIDs:    postIDs,
		Followings: emails(followings),
		Followers:  emails(followers),
	}, nil
}

// PublicProfile is FullUser with the collections reduced to counts, so
// a non-owner only learns cardinalities.
func (p *Projector) PublicProfile(ctx context.Context, email string) (*domain.PublicProfile, error) {
	user, err := p.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	postIDs, followings, followers, err := p.userRelations(ctx, email)
	if err != nil {
		return nil, err
	}

	return &domain.PublicProfile{
		User:           *user,
		PostCount:      len(postIDs),
		FollowingCount: len(followings),
		FollowerCount:  len(followers),
	}, nil
}

func (p *Projector) assemblePost(ctx context.Context, post *domain.Post) (*domain.FullPost, error) {
	full, err := p.assembleNested(ctx, post)
	if err != nil {
		return nil, err
	}

	comments, err := p.repos.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if comments != nil {
		full.Comments = comments
	}

	likers, err := p.repos.Posts.ListLikers(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if likers != nil {
		full.Likers = likers
	}

	return full, nil
}

// assembleNested builds the reduced shape used for the nested original
// of a retweet: author and images only.
func (p *Projector) assembleNested(ctx context.Context, post *domain.Post) (*domain.FullPost, error) {
	author, err := p.repos.Users.GetByEmail(ctx, post.AuthorEmail)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("author %s of post %s missing", post.AuthorEmail, post.ID)
	}

	images, err := p.repos.Posts.ListImages(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	full := &domain.FullPost{
		Post:     *post,
		Author:   author.Public(),
		Images:   []domain.Image{},
		Comments: []domain.Comment{},
		Likers:   []domain.PublicUser{},
	}
	if images != nil {
		full.Images = images
	}
	return full, nil
}

func (p *Projector) userRelations(ctx context.Context, email string) ([]uuid.UUID, []domain.PublicUser, []domain.PublicUser, error) {
	postIDs, err := p.repos.Users.ListPostIDs(ctx, email)
	if err != nil {
		return nil, nil, nil, err
	}
	if postIDs == nil {
		postIDs = []uuid.UUID{}
	}

	followings, err := p.repos.Follows.ListFollowings(ctx, email)
	if err != nil {
		return nil, nil, nil, err
	}

	followers, err := p.repos.Follows.ListFollowers(ctx, email)
	if err != nil {
		return nil, nil, nil, err
	}

	return postIDs, followings, followers, nil
}

func emails(users []domain.PublicUser) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}
