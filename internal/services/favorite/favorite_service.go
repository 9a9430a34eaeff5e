package favorite

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/metrics"
	"github.com/rajivgeraev/ads-service/internal/middleware"
	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
	"github.com/rajivgeraev/ads-service/internal/utils"
)

// FavoriteStore хранилище избранного. Add и Remove идемпотентны:
// повторное добавление и удаление отсутствующей записи не ошибка.
type FavoriteStore interface {
	Add(ctx context.Context, adID, userID uuid.UUID) (bool, error)
	Remove(ctx context.Context, adID, userID uuid.UUID) (bool, error)
}

// AdFinder проверяет существование объявления
type AdFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Ad, error)
}

// FavoriteService представляет сервис для работы с избранными объявлениями
type FavoriteService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	favorites  FavoriteStore
	ads        AdFinder
}

// NewFavoriteService создает новый экземпляр FavoriteService
func NewFavoriteService(cfg *config.Config, jwtService *utils.JWTService, favorites FavoriteStore, ads AdFinder) *FavoriteService {
	return &FavoriteService{
		cfg:        cfg,
		jwtService: jwtService,
		favorites:  favorites,
		ads:        ads,
	}
}

// AddToFavorites добавляет объявление в избранное текущего пользователя
func (s *FavoriteService) AddToFavorites(c fiber.Ctx) error {
	return s.toggle(c, "add", s.favorites.Add, "Ошибка добавления в избранное")
}

// RemoveFromFavorites удаляет объявление из избранного текущего пользователя
func (s *FavoriteService) RemoveFromFavorites(c fiber.Ctx) error {
	return s.toggle(c, "remove", s.favorites.Remove, "Ошибка удаления из избранного")
}

// toggle проверяет объявление, применяет операцию и отвечает 200 без тела
func (s *FavoriteService) toggle(c fiber.Ctx, action string, op func(ctx context.Context, adID, userID uuid.UUID) (bool, error), failMsg string) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	adID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	// Проверяем, существует ли объявление
	if _, err := s.ads.Get(c.Context(), adID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c)
		}
		return utils.InternalError(c, err, "Ошибка проверки объявления")
	}

	changed, err := op(c.Context(), adID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c)
		}
		return utils.InternalError(c, err, failMsg)
	}

	metrics.RecordFavoriteToggle(action, changed)
	log.Debug().
		Str("ad_id", adID.String()).
		Str("user_id", userID.String()).
		Str("action", action).
		Bool("changed", changed).
		Msg("Избранное")

	return c.Status(fiber.StatusOK).Send(nil)
}
