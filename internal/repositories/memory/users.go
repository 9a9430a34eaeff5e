package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/models"
)

// UserRepository пользователи Telegram в памяти
type UserRepository struct {
	s *Store
}

// CreateOrUpdateTelegramUser создает пользователя или обновляет его данные по telegram_id
func (r *UserRepository) CreateOrUpdateTelegramUser(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[user.TelegramID]; ok {
		user.ID = existing.ID
	} else {
		user.ID = uuid.New()
	}

	stored := *user
	r.s.users[user.TelegramID] = &stored
	return nil
}
