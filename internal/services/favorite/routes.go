package favorite

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/ads-service/internal/middleware"
)

// SetupRoutes настраивает маршруты избранного.
// Вызываются фоновыми запросами и отвечают пустым телом.
func (s *FavoriteService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService, s.cfg.LoginURL)

	app.Post("/ads/:id/favorite", s.AddToFavorites, auth)
	app.Post("/ads/:id/unfavorite", s.RemoveFromFavorites, auth)
}
