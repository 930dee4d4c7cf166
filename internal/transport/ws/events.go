package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/fosel/chirp/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypePostCreated  = "post.created"
	EventTypeCommentAdded = "comment.created"
	EventTypePostLiked    = "post.liked"
	EventTypeFollowed     = "user.followed"
	EventTypePong         = "pong"
	EventTypeError        = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type PostPayload struct {
	domain.FullPost
}

type CommentPayload struct {
	domain.Comment
}

type LikePayload struct {
	PostID    uuid.UUID `json:"post_id"`
	UserEmail string    `json:"user_email"`
}

type FollowPayload struct {
	Follower domain.PublicUser `json:"follower"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
