// Package postgres реализует репозитории поверх PostgreSQL (pgx).
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа
const foreignKeyViolation = "23503"

// DBTX общий интерфейс для пула соединений и транзакции
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// escapeLike экранирует спецсимволы шаблона LIKE, чтобы поиск был по подстроке
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
