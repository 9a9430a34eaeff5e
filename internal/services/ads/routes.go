package ads

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/ads-service/internal/middleware"
)

// SetupRoutes настраивает маршруты объявлений
func (s *AdService) SetupRoutes(app *fiber.App) {
	api := app.Group("/ads")

	auth := middleware.AuthMiddleware(s.jwtService, s.cfg.LoginURL)
	optional := middleware.OptionalAuthMiddleware(s.jwtService)

	// Middleware передаются после обработчика и выполняются до него

	// Список и поиск, избранное видно авторизованным
	api.Get("/", s.ListAds, optional)

	// /create регистрируем раньше /:id
	api.Get("/create", s.CreateForm, auth)
	api.Post("/create", s.CreateAd, auth)

	api.Get("/:id", s.GetAd, optional)
	api.Get("/:id/pic", s.StreamPicture)

	// Только владелец
	api.Get("/:id/update", s.UpdateForm, auth)
	api.Post("/:id/update", s.UpdateAd, auth)
	api.Get("/:id/delete", s.DeleteConfirm, auth)
	api.Post("/:id/delete", s.DeleteAd, auth)
}
