package auth

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rajivgeraev/ads-service/internal/middleware"
)

// SetupRoutes регистрирует маршруты в Fiber
func (s *AuthService) SetupRoutes(app *fiber.App) {
	if s.cfg.TelegramBotToken != "" {
		app.Post("/api/auth/telegram", s.TelegramAuthHandler)
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN не задан, вход через Telegram отключён")
	}

	// Защищенные маршруты
	protected := app.Group("/api")
	protected.Get("/profile", s.Profile, middleware.AuthMiddleware(s.jwtService, ""))
}
