package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

// FavoriteRepository избранное в памяти
type FavoriteRepository struct {
	s *Store
}

// Add добавляет пару (объявление, пользователь), если ее еще нет
func (r *FavoriteRepository) Add(_ context.Context, adID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ads[adID]; !ok {
		return false, repositories.ErrNotFound
	}

	key := favKey{adID: adID, userID: userID}
	if _, exists := r.s.favs[key]; exists {
		return false, nil
	}
	r.s.favs[key] = models.Favorite{AdID: adID, UserID: userID, CreatedAt: r.s.now()}
	return true, nil
}

// Remove удаляет пару, отсутствие записи не ошибка
func (r *FavoriteRepository) Remove(_ context.Context, adID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := favKey{adID: adID, userID: userID}
	if _, exists := r.s.favs[key]; !exists {
		return false, nil
	}
	delete(r.s.favs, key)
	return true, nil
}

// FavoriteAdIDs возвращает ID избранных объявлений пользователя
func (r *FavoriteRepository) FavoriteAdIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []uuid.UUID
	for key := range r.s.favs {
		if key.userID == userID {
			ids = append(ids, key.adID)
		}
	}
	return ids, nil
}
