// Package repositories содержит общие для всех хранилищ ошибки.
package repositories

import "errors"

// ErrNotFound возвращается, когда запись не найдена или не принадлежит пользователю.
// Эти два случая намеренно не различаются.
var ErrNotFound = errors.New("запись не найдена")
