package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

// CommentRepository комментарии в памяти
type CommentRepository struct {
	s *Store
}

// ListByAd возвращает комментарии объявления, последние обновленные первыми
func (r *CommentRepository) ListByAd(_ context.Context, adID uuid.UUID) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var comments []models.Comment
	for _, comment := range r.s.comments {
		if comment.AdID == adID {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].UpdatedAt.After(comments[j].UpdatedAt)
	})
	return comments, nil
}

// Create сохраняет комментарий к существующему объявлению
func (r *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ads[comment.AdID]; !ok {
		return repositories.ErrNotFound
	}

	comment.ID = uuid.New()
	comment.CreatedAt = r.s.now()
	comment.UpdatedAt = comment.CreatedAt

	stored := *comment
	r.s.comments[comment.ID] = &stored
	return nil
}

// FindByIDAndOwner возвращает комментарий, только если он принадлежит ownerID
func (r *CommentRepository) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comment, ok := r.s.comments[id]
	if !ok || comment.OwnerID != ownerID {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

// DeleteOwned удаляет комментарий владельца
func (r *CommentRepository) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok || comment.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}
