package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/db"
	"github.com/rajivgeraev/ads-service/internal/models"
)

// UserRepository работает с таблицей users, которую заполняет вход через Telegram
type UserRepository struct {
	db DBTX
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateOrUpdateTelegramUser создает пользователя при первом входе через Telegram
// или обновляет его данные и время входа
func (r *UserRepository) CreateOrUpdateTelegramUser(ctx context.Context, user *models.User) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, telegram_id, username, first_name, last_name, photo_url, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    photo_url = EXCLUDED.photo_url,
		    last_login_at = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`, uuid.New(), user.TelegramID, user.Username, user.FirstName, user.LastName, user.PhotoURL).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении пользователя Telegram: %w", err)
	}

	return nil
}
