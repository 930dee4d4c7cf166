package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID  `json:"id"`
	AuthorEmail string     `json:"author_email"`
	Content     string     `json:"content"`
	RetweetOf   *uuid.UUID `json:"retweet_of,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsRetweet reports whether this post is a share of another post.
func (p *Post) IsRetweet() bool {
	return p.RetweetOf != nil
}

type Image struct {
	ID     uuid.UUID `json:"id"`
	PostID uuid.UUID `json:"post_id"`
	Src    string    `json:"src"`
}
