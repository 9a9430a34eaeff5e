package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/utils"
)

const userIDKey = "userID"

// AuthMiddleware создаёт middleware для проверки JWT.
// Без действительного токена запрос отклоняется с 401,
// а если задан loginURL, перенаправляется на вход с параметром next.
func AuthMiddleware(jwtService *utils.JWTService, loginURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, reason := authenticate(c, jwtService)
		if reason != "" {
			if loginURL != "" {
				return c.Redirect().Status(fiber.StatusFound).To(loginRedirect(loginURL, c.OriginalURL()))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": reason,
			})
		}

		// Добавляем userID в контекст
		c.Locals(userIDKey, userID)

		return c.Next()
	}
}

// OptionalAuthMiddleware запоминает пользователя, если токен действителен,
// и никогда не отклоняет запрос
func OptionalAuthMiddleware(jwtService *utils.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		if userID, reason := authenticate(c, jwtService); reason == "" {
			c.Locals(userIDKey, userID)
		}
		return c.Next()
	}
}

// CurrentUserID возвращает пользователя текущего запроса
func CurrentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	return userID, ok
}

// authenticate возвращает пользователя из заголовка Authorization
// или причину отказа
func authenticate(c fiber.Ctx, jwtService *utils.JWTService) (uuid.UUID, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, "Missing authorization header"
	}

	// Проверяем Bearer токен
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, "Invalid authorization header format"
	}

	userID, err := jwtService.ExtractUserID(parts[1])
	if err != nil {
		return uuid.Nil, "Invalid or expired token"
	}
	return userID, ""
}

func loginRedirect(loginURL, next string) string {
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + url.QueryEscape(next)
}
