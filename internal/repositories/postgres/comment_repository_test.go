package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

func TestCommentRepositoryListByAdOrdersByUpdated(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock)

	adID, owner := uuid.New(), uuid.New()
	newer, older := time.Now(), time.Now().Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC, seq DESC")).
		WithArgs(adID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "text", "ad_id", "owner_id", "created_at", "updated_at"}).
			AddRow(uuid.New(), "second", adID, owner, newer, newer).
			AddRow(uuid.New(), "first", adID, owner, older, older))

	comments, err := repo.ListByAd(context.Background(), adID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryCreateForDeletedAd(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock)

	comment := &models.Comment{Text: "Is it still available?", AdID: uuid.New(), OwnerID: uuid.New()}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
		WithArgs(pgxmock.AnyArg(), comment.Text, comment.AdID, comment.OwnerID).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

	assert.ErrorIs(t, repo.Create(context.Background(), comment), repositories.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryDeleteOwnedForeign(t *testing.T) {
	mock := newMock(t)
	repo := NewCommentRepository(mock)

	id, stranger := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1 AND owner_id = $2")).
		WithArgs(id, stranger).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.DeleteOwned(context.Background(), id, stranger), repositories.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
