package service

import (
	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
)

// Notifier pushes social events to connected clients. Delivery is
// best-effort and happens after the mutation commits; implementations
// must not block.
type Notifier interface {
	// NotifyNewPost fans a fresh post out to the author's followers.
	NotifyNewPost(post *domain.FullPost)
	// NotifyNewComment tells the post author about a new comment.
	NotifyNewComment(postAuthorEmail string, comment *domain.Comment)
	// NotifyLike tells the post author who liked their post.
	NotifyLike(postAuthorEmail string, postID uuid.UUID, likerEmail string)
	// NotifyFollow tells a user they gained a follower.
	NotifyFollow(followeeEmail string, follower domain.PublicUser)
}
