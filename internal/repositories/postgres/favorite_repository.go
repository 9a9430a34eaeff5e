package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rajivgeraev/ads-service/internal/db"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

// FavoriteRepository хранит избранное в таблице favs
type FavoriteRepository struct {
	db DBTX
}

// NewFavoriteRepository создает новый экземпляр FavoriteRepository
func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add добавляет объявление в избранное пользователя.
// Повторное добавление не ошибка: created будет false.
func (r *FavoriteRepository) Add(ctx context.Context, adID, userID uuid.UUID) (bool, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO favs (ad_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (ad_id, user_id) DO NOTHING
	`, adID, userID)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return false, repositories.ErrNotFound
		}
		return false, fmt.Errorf("ошибка добавления в избранное: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Remove удаляет объявление из избранного. Отсутствие записи не ошибка.
func (r *FavoriteRepository) Remove(ctx context.Context, adID, userID uuid.UUID) (bool, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM favs WHERE ad_id = $1 AND user_id = $2`, adID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления из избранного: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// FavoriteAdIDs возвращает ID объявлений, добавленных пользователем в избранное
func (r *FavoriteRepository) FavoriteAdIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT ad_id FROM favs WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса избранного: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения избранного: %w", err)
	}

	return ids, nil
}
