package ads

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
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

const listPath = "/ads/"

// AdStore хранилище объявлений
type AdStore interface {
	ownership.Deleter[models.Ad]
	List(ctx context.Context, search string) ([]models.Ad, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Ad, error)
	GetPicture(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	Create(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, ad *models.Ad, replacePicture bool) error
}

// CommentLister отдаёт комментарии объявления
type CommentLister interface {
	ListByAd(ctx context.Context, adID uuid.UUID) ([]models.Comment, error)
}

// FavoriteLister отдаёт избранные объявления пользователя
type FavoriteLister interface {
	FavoriteAdIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// AdService представляет сервис для работы с объявлениями
type AdService struct {
	cfg        *config.Config
	jwtService *utils.JWTService
	ads        AdStore
	comments   CommentLister
	favorites  FavoriteLister
	now        func() time.Time
}

// NewAdService создает новый экземпляр AdService
func NewAdService(cfg *config.Config, jwtService *utils.JWTService, ads AdStore, comments CommentLister, favorites FavoriteLister) *AdService {
	return &AdService{
		cfg:        cfg,
		jwtService: jwtService,
		ads:        ads,
		comments:   comments,
		favorites:  favorites,
		now:        time.Now,
	}
}

// ListAds возвращает объявления с поиском по заголовку и тексту
func (s *AdService) ListAds(c fiber.Ctx) error {
	search := c.Query("search")

	ads, err := s.ads.List(c.Context(), search)
	if err != nil {
		return utils.InternalError(c, err, "Ошибка получения списка объявлений")
	}

	now := s.now()
	items := make([]models.AdListItem, 0, len(ads))
	for _, ad := range ads {
		items = append(items, models.AdListItem{
			Ad:             ad,
			NaturalUpdated: humanize.RelTime(ad.UpdatedAt, now, "ago", "from now"),
		})
	}

	// Избранное показываем только авторизованному пользователю
	favorites := []uuid.UUID{}
	if userID, ok := middleware.CurrentUserID(c); ok {
		ids, err := s.favorites.FavoriteAdIDs(c.Context(), userID)
		if err != nil {
			return utils.InternalError(c, err, "Ошибка получения избранного")
		}
		favorites = append(favorites, ids...)
	}

	return c.JSON(fiber.Map{
		"ads":       items,
		"favorites": favorites,
		"search":    search,
	})
}

// GetAd возвращает объявление с комментариями
func (s *AdService) GetAd(c fiber.Ctx) error {
	adID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	ad, err := s.ads.Get(c.Context(), adID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c)
		}
		return utils.InternalError(c, err, "Ошибка получения объявления")
	}

	comments, err := s.comments.ListByAd(c.Context(), adID)
	if err != nil {
		return utils.InternalError(c, err, "Ошибка получения комментариев")
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	userID, authenticated := middleware.CurrentUserID(c)

	return c.JSON(fiber.Map{
		"ad":           ad,
		"comments":     comments,
		"comment_form": forms.CommentForm{},
		"is_owner":     authenticated && ad.OwnedBy(userID),
	})
}

// CreateForm возвращает пустую форму объявления
func (s *AdService) CreateForm(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form":   forms.AdForm{},
		"errors": forms.Errors{},
	})
}

// CreateAd создает объявление текущего пользователя
func (s *AdService) CreateAd(c fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Пользователь не авторизован"})
	}

	form, err := s.bindAdForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if errs := form.Validate(s.cfg.MaxPictureBytes); errs != nil {
		return formError(c, form, errs)
	}

	ad := &models.Ad{OwnerID: userID}
	if _, err := form.Apply(ad); err != nil {
		return s.applyError(c, form, err)
	}

	if err := s.ads.Create(c.Context(), ad); err != nil {
		return utils.InternalError(c, err, "Ошибка создания объявления")
	}

	metrics.RecordAdEvent("ad", "created")
	log.Info().Str("ad_id", ad.ID.String()).Str("owner_id", userID.String()).Msg("Объявление создано")
	return utils.RedirectTo(c, listPath)
}

// UpdateForm возвращает форму, заполненную данными объявления владельца
func (s *AdService) UpdateForm(c fiber.Ctx) error {
	ad, err := s.loadOwned(c)
	if err != nil {
		return s.ownedError(c, err)
	}

	return c.JSON(fiber.Map{
		"ad":     ad,
		"form":   forms.AdFormFromModel(ad),
		"errors": forms.Errors{},
	})
}

// UpdateAd сохраняет изменения объявления владельца
func (s *AdService) UpdateAd(c fiber.Ctx) error {
	ad, err := s.loadOwned(c)
	if err != nil {
		return s.ownedError(c, err)
	}

	form, err := s.bindAdForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Неверный формат данных"})
	}
	if errs := form.Validate(s.cfg.MaxPictureBytes); errs != nil {
		return formError(c, form, errs)
	}

	replacePicture, err := form.Apply(ad)
	if err != nil {
		return s.applyError(c, form, err)
	}

	if err := s.ads.Update(c.Context(), ad, replacePicture); err != nil {
		return s.ownedError(c, err)
	}

	metrics.RecordAdEvent("ad", "updated")
	return utils.RedirectTo(c, listPath)
}

// DeleteConfirm возвращает объявление владельца перед удалением
func (s *AdService) DeleteConfirm(c fiber.Ctx) error {
	ad, err := s.loadOwned(c)
	if err != nil {
		return s.ownedError(c, err)
	}
	return c.JSON(fiber.Map{"ad": ad})
}

// DeleteAd удаляет объявление владельца вместе с комментариями и избранным
func (s *AdService) DeleteAd(c fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)
	adID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	if _, err := ownership.Delete[models.Ad](c.Context(), s.ads, adID, userID); err != nil {
		return s.ownedError(c, err)
	}

	metrics.RecordAdEvent("ad", "deleted")
	log.Info().Str("ad_id", adID.String()).Str("owner_id", userID.String()).Msg("Объявление удалено")
	return utils.RedirectTo(c, listPath)
}

// StreamPicture отдаёт картинку объявления как есть
func (s *AdService) StreamPicture(c fiber.Ctx) error {
	adID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.NotFound(c)
	}

	picture, contentType, err := s.ads.GetPicture(c.Context(), adID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c)
		}
		return utils.InternalError(c, err, "Ошибка получения картинки")
	}
	if len(picture) == 0 {
		return utils.NotFound(c)
	}

	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(picture)))
	return c.Send(picture)
}

// loadOwned загружает объявление из пути, только если оно принадлежит текущему пользователю
func (s *AdService) loadOwned(c fiber.Ctx) (*models.Ad, error) {
	userID, _ := middleware.CurrentUserID(c)
	adID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return ownership.Load[models.Ad](c.Context(), s.ads, adID, userID)
}

// ownedError отвечает 404 и для чужого, и для отсутствующего объявления
func (s *AdService) ownedError(c fiber.Ctx, err error) error {
	if ownership.IsNotFound(err) {
		return utils.NotFound(c)
	}
	return utils.InternalError(c, err, "Ошибка доступа к объявлению")
}

func (s *AdService) applyError(c fiber.Ctx, form *forms.AdForm, err error) error {
	var errs forms.Errors
	if errors.As(err, &errs) {
		return formError(c, form, errs)
	}
	return utils.InternalError(c, err, "Ошибка обработки формы объявления")
}

// bindAdForm читает поля формы и необязательный файл picture
func (s *AdService) bindAdForm(c fiber.Ctx) (*forms.AdForm, error) {
	form := &forms.AdForm{}
	if err := c.Bind().Body(form); err != nil {
		return nil, err
	}

	// Пустой файл считается отсутствием загрузки
	if picture, err := c.FormFile("picture"); err == nil && picture.Size > 0 {
		form.Picture = picture
	}
	return form, nil
}

// formError возвращает введённые значения вместе с ошибками по полям
func formError(c fiber.Ctx, form any, errs forms.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"form":   form,
		"errors": errs,
	})
}
