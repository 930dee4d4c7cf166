package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type FollowService struct {
	repos    repository.Repos
	notifier Notifier
}

// NewFollowService creates the social graph service. notifier can be nil.
func NewFollowService(repos repository.Repos, notifier Notifier) *FollowService {
	return &FollowService{
		repos:    repos,
		notifier: notifier,
	}
}

// Follow adds the (actor follows target) edge. Following twice has no
// extra effect.
func (s *FollowService) Follow(ctx context.Context, actor, targetEmail string) (*domain.PublicUser, error) {
	target, err := s.repos.Users.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repos.Follows.Add(ctx, actor, targetEmail); err != nil {
		return nil, fmt.Errorf("adding follow edge: %w", err)
	}

	if s.notifier != nil {
		actorUser, err := s.repos.Users.GetByEmail(ctx, actor)
		if err == nil && actorUser != nil {
			s.notifier.NotifyFollow(targetEmail, actorUser.Public())
		}
	}

	pub := target.Public()
	return &pub, nil
}

// Unfollow removes the (actor follows target) edge; removing a missing
// edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, actor, targetEmail string) (*domain.PublicUser, error) {
	target, err := s.repos.Users.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repos.Follows.Remove(ctx, actor, targetEmail); err != nil {
		return nil, fmt.Errorf("removing follow edge: %w", err)
	}

	pub := target.Public()
	return &pub, nil
}

// RemoveFollower removes the opposite-direction edge: the named user
// stops following actor. This is the "block my follower" operation.
func (s *FollowService) RemoveFollower(ctx context.Context, actor, followerEmail string) error {
	follower, err := s.repos.Users.GetByEmail(ctx, followerEmail)
	if err != nil {
		return err
	}
	if follower == nil {
		return ErrUserNotFound
	}

	return s.repos.Follows.Remove(ctx, followerEmail, actor)
}

func (s *FollowService) ListFollowers(ctx context.Context, actor string) ([]domain.PublicUser, error) {
	return s.listEdges(ctx, actor, s.repos.Follows.ListFollowers)
}

func (s *FollowService) ListFollowings(ctx context.Context, actor string) ([]domain.PublicUser, error) {
	return s.listEdges(ctx, actor, s.repos.Follows.ListFollowings)
}

func (s *FollowService) listEdges(ctx context.Context, actor string, list func(context.Context, string) ([]domain.PublicUser, error)) ([]domain.PublicUser, error) {
	self, err := s.repos.Users.GetByEmail(ctx, actor)
	if err != nil {
		return nil, err
	}
	if self == nil {
		return nil, ErrUserNotFound
	}

	users, err := list(ctx, actor)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.PublicUser{}
	}
	return users, nil
}
