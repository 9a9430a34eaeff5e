package comment

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rajivgeraev/ads-service/internal/config"
	"github.com/rajivgeraev/ads-service/internal/forms"
	"github.com/rajivgeraev/ads-service/internal/metrics"
	"github.com/rajivgeraev/ads-service/internal/middleware"
	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/ownership"
	"github.com/rajivgeraev/ads-service/internal/repositories"
	"github.com/rajivgeraev/ads-service/internal/utils"
)

// CommentStore хранилище комментариев
type CommentStore interface {
	ownership.Deleter[models.Comment]
	Create(ctx context.Context, comment *models.Comment) error
}

// AdFinder проверяет существование объявления
type AdFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Ad, error)
}

// CommentService представляет сервис комментариев к объявлениям
type CommentService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	comments   CommentStore
	ads        AdFinder
}

// NewCommentService создает новый экземпляр CommentService
func NewCommentService(cfg *config.Config, jwtService *utils.JWTService, comments CommentStore, ads AdFinder) *CommentService {
	return &CommentService{
		cfg:        cfg,
		jwtService: jwtService,
		comments:   comments,
		ads:        ads,
	}
}

// CreateComment добавляет комментарий текущего пользователя к объявлению
func (s *CommentService) CreateComment(c fiber.Ctx) error {
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

	form := &forms.CommentForm{}
	if err := c.Bind().Body(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if errs := form.Validate(); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"form":   form,
			"errors": errs,
		})
	}

	comment := &models.Comment{Text: form.Comment, AdID: adID, OwnerID: userID}
	if err := s.comments.Create(c.Context(), comment); err != nil {
		// Объявление могли удалить между проверкой и вставкой
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c)
		}
		return utils.InternalError(c, err, "Ошибка создания комментария")
	}
	metrics.RecordAdEvent("comment", "created")

	return utils.RedirectTo(c, adPath(adID))
}

// DeleteConfirm возвращает комментарий владельца перед удалением
func (s *CommentService) DeleteConfirm(c fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	commentID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	comment, err := ownership.Load[models.Comment](c.Context(), s.comments, commentID, userID)
	if err != nil {
		return ownedError(c, err)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment удаляет комментарий владельца и возвращает на страницу объявления
func (s *CommentService) DeleteComment(c fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	commentID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	comment, err := ownership.Delete[models.Comment](c.Context(), s.comments, commentID, userID)
	if err != nil {
		return ownedError(c, err)
	}

	metrics.RecordAdEvent("comment", "deleted")
	log.Info().Str("comment_id", commentID.String()).Str("ad_id", comment.AdID.String()).Msg("Комментарий удалён")
	return utils.RedirectTo(c, adPath(comment.AdID))
}

func ownedError(c fiber.Ctx, err error) error {
	if ownership.IsNotFound(err) {
		return utils.NotFound(c)
	}
	return utils.InternalError(c, err, "Ошибка доступа к комментарию")
}

func adPath(adID uuid.UUID) string {
	return "/ads/" + adID.String() + "/"
}
