package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment представляет комментарий к объявлению
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	AdID      uuid.UUID `json:"ad_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
