package comment

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/ads-service/internal/middleware"
)

// SetupRoutes настраивает маршруты комментариев
func (s *CommentService) SetupRoutes(app *fiber.App) {
	auth := middleware.AuthMiddleware(s.jwtService, s.cfg.LoginURL)

	app.Post("/ads/:id/comment", s.CreateComment, auth)

	// Удаление доступно только владельцу комментария
	comments := app.Group("/comments")
	comments.Get("/:id/delete", s.DeleteConfirm, auth)
	comments.Post("/:id/delete", s.DeleteComment, auth)
}
