package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/middleware"
	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/utils"
)

// initDataTTL срок годности initData от Telegram
const initDataTTL = 24 * time.Hour

// UserStore сохраняет пользователей, пришедших через Telegram
type UserStore interface {
	CreateOrUpdateTelegramUser(ctx context.Context, user *models.User) error
}

// AuthService – структура для обработки авторизации
type AuthService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	users      UserStore
}

// NewAuthService – конструктор AuthService
func NewAuthService(cfg *config.Config, jwtService *utils.JWTService, users UserStore) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtService: jwtService,
		users:      users,
	}
}

// TelegramAuthHandler проверяет initData, сохраняет пользователя и возвращает JWT
func (s *AuthService) TelegramAuthHandler(c fiber.Ctx) error {
	var payload struct {
		InitData string `json:"init_data" form:"init_data"`
	}

	if err := c.Bind().Body(&payload); err != nil || payload.InitData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	// Проверяем initData
	if err := initdata.Validate(payload.InitData, s.cfg.TelegramBotToken, initDataTTL); err != nil {
		log.Warn().Err(err).Msg("Некорректные данные Telegram")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Telegram data"})
	}

	// Парсим данные
	data, err := initdata.Parse(payload.InitData)
	if err != nil || data.User.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to parse initData"})
	}

	user := &models.User{
		TelegramID: data.User.ID,
		Username:   data.User.Username,
		FirstName:  data.User.FirstName,
		LastName:   data.User.LastName,
		PhotoURL:   data.User.PhotoURL,
	}
	if err := s.users.CreateOrUpdateTelegramUser(c.Context(), user); err != nil {
		return utils.InternalError(c, err, "Ошибка сохранения пользователя")
	}

	// Генерируем JWT
	jwtToken, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return utils.InternalError(c, err, "Ошибка генерации JWT")
	}

	log.Info().Str("user_id", user.ID.String()).Int64("telegram_id", user.TelegramID).Msg("Пользователь вошёл через Telegram")

	return c.JSON(fiber.Map{
		"token": jwtToken,
		"user":  user,
	})
}

// Profile возвращает идентификатор текущего пользователя
func (s *AuthService) Profile(c fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	return c.JSON(fiber.Map{
		"user_id":   userID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
