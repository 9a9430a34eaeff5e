package models

import (
	"time"

	"github.com/google/uuid"
)

// Ad представляет объявление в системе
type Ad struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Price       *string   `json:"price"` // Десятичная строка вида "12.50", nil - цена не указана
	Text        string    `json:"text"`
	Picture     []byte    `json:"-"`
	ContentType string    `json:"content_type,omitempty"` // MIME-тип картинки
	HasPicture  bool      `json:"has_picture"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy проверяет, принадлежит ли объявление пользователю
func (a *Ad) OwnedBy(userID uuid.UUID) bool {
	return a.OwnerID == userID
}

// AdListItem объявление в списке с человекочитаемым временем обновления
type AdListItem struct {
	Ad
	NaturalUpdated string `json:"natural_updated"`
}
