// Package app собирает Fiber-приложение сервиса объявлений.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/metrics"
	"github.com/rajivgeraev/ads-service/internal/repositories/memory"
	"github.com/rajivgeraev/ads-service/internal/repositories/postgres"
	"github.com/rajivgeraev/ads-service/internal/services/ads"
	"github.com/rajivgeraev/ads-service/internal/services/auth"
	"github.com/rajivgeraev/ads-service/internal/services/comment"
	"github.com/rajivgeraev/ads-service/internal/services/favorite"
	"github.com/rajivgeraev/ads-service/internal/utils"
)

// multipartOverhead запас на поля формы сверх размера картинки
const multipartOverhead = 1 << 20

// CommentRepository нужен и странице объявления, и сервису комментариев
type CommentRepository interface {
	ads.CommentLister
	comment.CommentStore
}

// FavoriteRepository нужен и списку объявлений, и сервису избранного
type FavoriteRepository interface {
	ads.FavoriteLister
	favorite.FavoriteStore
}

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories набор хранилищ, с которыми работают сервисы
type Repositories struct {
	Ads       ads.AdStore
	Comments  CommentRepository
	Favorites FavoriteRepository
	Users     auth.UserStore
	Health    Pinger
}

// PostgresRepositories репозитории поверх пула PostgreSQL
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Ads:       postgres.NewAdRepository(pool),
		Comments:  postgres.NewCommentRepository(pool),
		Favorites: postgres.NewFavoriteRepository(pool),
		Users:     postgres.NewUserRepository(pool),
		Health:    pool,
	}
}

// MemoryRepositories репозитории в памяти процесса
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Ads:       store.Ads(),
		Comments:  store.Comments(),
		Favorites: store.Favorites(),
		Users:     store.Users(),
		Health:    store,
	}
}

// New создаёт приложение со всеми маршрутами
func New(cfg *config.Config, repos Repositories) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Ads Service",
		ErrorHandler: errorHandler,
		BodyLimit:    int(cfg.MaxPictureBytes) + multipartOverhead,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowCredentials: false,
	}))

	jwtService := utils.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Создаём сервисы
	authService := auth.NewAuthService(cfg, jwtService, repos.Users)
	adService := ads.NewAdService(cfg, jwtService, repos.Ads, repos.Comments, repos.Favorites)
	commentService := comment.NewCommentService(cfg, jwtService, repos.Comments, repos.Ads)
	favoriteService := favorite.NewFavoriteService(cfg, jwtService, repos.Favorites, repos.Ads)

	app.Get("/healthz", healthHandler(repos.Health))
	app.Get("/metrics", metrics.Handler())

	// Регистрируем маршруты
	authService.SetupRoutes(app)
	adService.SetupRoutes(app)
	commentService.SetupRoutes(app)
	favoriteService.SetupRoutes(app)

	return app
}

func healthHandler(pinger Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Хранилище недоступно")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// errorHandler обрабатывает ошибки Fiber
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	// Проверяем, является ли ошибка из Fiber
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("Необработанная ошибка")
	}

	// Отправляем ошибку в JSON
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
