package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a product review left by a user.
type Comment struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Text      string
	Rating    int // 1..5
	CreatedAt time.Time
}
