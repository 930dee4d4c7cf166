package domain

import (
	"github.com/google/uuid"
)

// Hashtag names are stored lowercase without the leading '#',
// unique by name.
type Hashtag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
