package ws

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub     *Hub
	follows repository.FollowRepository
	log     *zap.Logger
}

func NewHubNotifier(hub *Hub, follows repository.FollowRepository, log *zap.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, follows: follows, log: log}
}

// NotifyNewPost fans the post out to everyone following its author.
func (n *HubNotifier) NotifyNewPost(post *domain.FullPost) {
	evt, err := NewEvent(EventTypePostCreated, PostPayload{FullPost: *post})
	if err != nil {
		n.log.Error("ws notifier marshal failed", zap.Error(err))
		return
	}

	followers, err := n.follows.ListFollowers(context.Background(), post.AuthorEmail)
	if err != nil {
		n.log.Error("ws notifier follower lookup failed", zap.Error(err))
		return
	}
	for _, f := range followers {
		n.hub.SendToUser(f.Email, evt)
	}
}

func (n *HubNotifier) NotifyNewComment(postAuthorEmail string, comment *domain.Comment) {
	evt, err := NewEvent(EventTypeCommentAdded, CommentPayload{Comment: *comment})
	if err != nil {
		n.log.Error("ws notifier marshal failed", zap.Error(err))
		return
	}
	n.hub.SendToUser(postAuthorEmail, evt)
}

func (n *HubNotifier) NotifyLike(postAuthorEmail string, postID uuid.UUID, likerEmail string) {
	evt, err := NewEvent(EventTypePostLiked, LikePayload{PostID: postID, UserEmail: likerEmail})
	if err != nil {
		n.log.Error("ws notifier marshal failed", zap.Error(err))
		return
	}
	n.hub.SendToUser(postAuthorEmail, evt)
}

func (n *HubNotifier) NotifyFollow(followeeEmail string, follower domain.PublicUser) {
	evt, err := NewEvent(EventTypeFollowed, FollowPayload{Follower: follower})
	if err != nil {
		n.log.Error("ws notifier marshal failed", zap.Error(err))
		return
	}
	n.hub.SendToUser(followeeEmail, evt)
}
