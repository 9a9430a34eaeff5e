// Package memory реализует репозитории в памяти процесса.
// Используется в тестах и при STORAGE=memory для локального запуска без PostgreSQL.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

type favKey struct {
	adID   uuid.UUID
	userID uuid.UUID
}

// Store общее состояние всех репозиториев. Удаление объявления каскадно
// удаляет его комментарии и избранное, как внешние ключи в PostgreSQL.
type Store struct {
	mu sync.RWMutex

	ads      map[uuid.UUID]*models.Ad
	adOrder  []uuid.UUID
	comments map[uuid.UUID]*models.Comment
	favs     map[favKey]models.Favorite
	users    map[int64]*models.User

	clock func() time.Time
	last  time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		ads:      make(map[uuid.UUID]*models.Ad),
		comments: make(map[uuid.UUID]*models.Comment),
		favs:     make(map[favKey]models.Favorite),
		users:    make(map[int64]*models.User),
		clock:    time.Now,
	}
}

// Ads возвращает репозиторий объявлений
func (s *Store) Ads() *AdRepository { return &AdRepository{s: s} }

// Comments возвращает репозиторий комментариев
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// Favorites возвращает репозиторий избранного
func (s *Store) Favorites() *FavoriteRepository { return &FavoriteRepository{s: s} }

// Users возвращает репозиторий пользователей
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Ping всегда успешен
func (s *Store) Ping(context.Context) error { return nil }

// now возвращает строго возрастающее время, чтобы порядок по updated_at был однозначным.
// Вызывать под s.mu.
func (s *Store) now() time.Time {
	t := s.clock().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// AdRepository объявления в памяти
type AdRepository struct {
	s *Store
}

// List возвращает объявления в порядке добавления с фильтром по подстроке
func (r *AdRepository) List(_ context.Context, search string) ([]models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(search)
	var ads []models.Ad
	for _, id := range r.s.adOrder {
		ad := r.s.ads[id]
		if needle != "" &&
			!strings.Contains(strings.ToLower(ad.Title), needle) &&
			!strings.Contains(strings.ToLower(ad.Text), needle) {
			continue
		}
		ads = append(ads, withoutPicture(ad))
	}
	return ads, nil
}

// Get возвращает объявление без содержимого картинки
func (r *AdRepository) Get(_ context.Context, id uuid.UUID) (*models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ad, ok := r.s.ads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := withoutPicture(ad)
	return &copied, nil
}

// FindByIDAndOwner возвращает объявление, только если оно принадлежит ownerID
func (r *AdRepository) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ad, ok := r.s.ads[id]
	if !ok || ad.OwnerID != ownerID {
		return nil, repositories.ErrNotFound
	}
	copied := withoutPicture(ad)
	return &copied, nil
}

// GetPicture возвращает содержимое картинки и ее MIME-тип
func (r *AdRepository) GetPicture(_ context.Context, id uuid.UUID) ([]byte, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ad, ok := r.s.ads[id]
	if !ok {
		return nil, "", repositories.ErrNotFound
	}
	return append([]byte(nil), ad.Picture...), ad.ContentType, nil
}

// Create сохраняет новое объявление
func (r *AdRepository) Create(_ context.Context, ad *models.Ad) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ad.ID = uuid.New()
	ad.CreatedAt = r.s.now()
	ad.UpdatedAt = ad.CreatedAt
	ad.HasPicture = len(ad.Picture) > 0

	stored := *ad
	stored.Picture = append([]byte(nil), ad.Picture...)
	r.s.ads[ad.ID] = &stored
	r.s.adOrder = append(r.s.adOrder, ad.ID)
	return nil
}

// Update сохраняет изменения объявления владельца
func (r *AdRepository) Update(_ context.Context, ad *models.Ad, replacePicture bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.ads[ad.ID]
	if !ok || stored.OwnerID != ad.OwnerID {
		return repositories.ErrNotFound
	}

	stored.Title = ad.Title
	stored.Price = ad.Price
	stored.Text = ad.Text
	if replacePicture {
		stored.Picture = append([]byte(nil), ad.Picture...)
		stored.ContentType = ad.ContentType
		stored.HasPicture = len(ad.Picture) > 0
	}
	stored.UpdatedAt = r.s.now()

	ad.UpdatedAt = stored.UpdatedAt
	ad.HasPicture = stored.HasPicture
	return nil
}

// DeleteOwned удаляет объявление вместе с комментариями и избранным
func (r *AdRepository) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ad, ok := r.s.ads[id]
	if !ok || ad.OwnerID != ownerID {
		return repositories.ErrNotFound
	}

	delete(r.s.ads, id)
	for i, existing := range r.s.adOrder {
		if existing == id {
			r.s.adOrder = append(r.s.adOrder[:i], r.s.adOrder[i+1:]...)
			break
		}
	}
	for commentID, comment := range r.s.comments {
		if comment.AdID == id {
			delete(r.s.comments, commentID)
		}
	}
	for key := range r.s.favs {
		if key.adID == id {
			delete(r.s.favs, key)
		}
	}
	return nil
}

func withoutPicture(ad *models.Ad) models.Ad {
	copied := *ad
	copied.Picture = nil
	return copied
}
