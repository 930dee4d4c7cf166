package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	AuthorEmail string    `json:"-"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	// Joined fields
	Author PublicUser `json:"user"`
}
