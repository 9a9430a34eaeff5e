// Package ownership ограничивает доступ к записям их владельцем.
//
// Запись чужого пользователя и отсутствующая запись неразличимы:
// в обоих случаях возвращается repositories.ErrNotFound.
package ownership

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rajivgeraev/ads-service/internal/repositories"
)

// Finder ищет запись по ID среди записей владельца
type Finder[T any] interface {
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*T, error)
}

// Deleter удаляет запись владельца
type Deleter[T any] interface {
	Finder[T]
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

// Load возвращает запись, если она принадлежит ownerID
func Load[T any](ctx context.Context, finder Finder[T], id, ownerID uuid.UUID) (*T, error) {
	if id == uuid.Nil || ownerID == uuid.Nil {
		return nil, repositories.ErrNotFound
	}

	record, err := finder.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, repositories.ErrNotFound
	}
	return record, nil
}

// Delete загружает запись владельца и удаляет ее.
// Возвращает удаленную запись, чтобы вызывающий мог узнать, например, родительское объявление.
func Delete[T any](ctx context.Context, deleter Deleter[T], id, ownerID uuid.UUID) (*T, error) {
	record, err := Load[T](ctx, deleter, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := deleter.DeleteOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return record, nil
}

// IsNotFound сообщает, означает ли ошибка отсутствие записи для владельца
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
