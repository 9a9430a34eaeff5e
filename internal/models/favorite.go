package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite представляет запись избранного объявления.
// Пара (AdID, UserID) уникальна, собственного ID у записи нет.
type Favorite struct {
	AdID      uuid.UUID `json:"ad_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
