package domain

import (
	"github.com/google/uuid"
)

// FullPost is the read-side composition of a post with everything the
// client needs to render it. The nested Retweet carries the original
// post's author and images only.
type FullPost struct {
	Post
	Author   PublicUser   `json:"user"`
	Images   []Image      `json:"images"`
	Comments []Comment    `json:"comments"`
	Likers   []PublicUser `json:"likers"`
	Retweet  *FullPost    `json:"retweet,omitempty"`
}

// FullUser is the self-profile projection: password excluded, owned
// posts reduced to their IDs to bound the payload.
type FullUser struct {
	User
	PostIDs    []uuid.UUID `json:"posts"`
	Followings []string    `json:"followings"`
	Followers  []string    `json:"followers"`
}

// PublicProfile replaces the collections with counts so non-owners only
// learn cardinalities.
type PublicProfile struct {
	User
	PostCount      int `json:"posts"`
	FollowingCount int `json:"followings"`
	FollowerCount  int `json:"followers"`
}
