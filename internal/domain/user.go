package domain

import (
	"time"
)

type User struct {
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the author shape embedded in post and comment
// projections. Liker entries carry the email only.
type PublicUser struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Email: u.Email, Nickname: u.Nickname}
}
