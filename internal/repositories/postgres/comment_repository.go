package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rajivgeraev/ads-service/internal/db"
	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

// CommentRepository хранит комментарии в таблице comments
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository создает новый экземпляр CommentRepository
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByAd возвращает комментарии объявления, последние обновленные первыми
func (r *CommentRepository) ListByAd(ctx context.Context, adID uuid.UUID) ([]models.Comment, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, text, ad_id, owner_id, created_at, updated_at
		FROM comments
		WHERE ad_id = $1
		ORDER BY updated_at DESC, seq DESC
	`, adID)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса комментариев: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.AdID,
			&comment.OwnerID,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения комментариев: %w", err)
	}

	return comments, nil
}

// Create сохраняет комментарий. Если объявление уже удалено, возвращает ErrNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	comment.ID = uuid.New()

	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (id, text, ad_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, comment.ID, comment.Text, comment.AdID, comment.OwnerID).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("ошибка сохранения комментария: %w", err)
	}

	return nil
}

// FindByIDAndOwner возвращает комментарий, только если он принадлежит ownerID
func (r *CommentRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Comment, error) {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	var comment models.Comment

	err := r.db.QueryRow(ctx, `
		SELECT id, text, ad_id, owner_id, created_at, updated_at
		FROM comments
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID).Scan(
		&comment.ID,
		&comment.Text,
		&comment.AdID,
		&comment.OwnerID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения комментария: %w", err)
	}

	return &comment, nil
}

// DeleteOwned удаляет комментарий владельца
func (r *CommentRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	ctx, cancel := db.GetContext(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка удаления комментария: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
