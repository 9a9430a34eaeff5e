package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/ads-service/internal/models"
)

func TestUserRepositoryUpsertReturnsExistingID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	existing := uuid.New()
	user := &models.User{TelegramID: 279058397, Username: "alice", FirstName: "Alice"}

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (telegram_id) DO UPDATE")).
		WithArgs(pgxmock.AnyArg(), user.TelegramID, "alice", "Alice", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(existing))

	require.NoError(t, repo.CreateOrUpdateTelegramUser(context.Background(), user))
	assert.Equal(t, existing, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpsertError(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), int64(1), "", "", "", "").
		WillReturnError(errors.New("connection reset"))

	err := repo.CreateOrUpdateTelegramUser(context.Background(), &models.User{TelegramID: 1})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
