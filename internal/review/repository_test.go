// AngelaMos | 2026
// repository_test.go

package review

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
)

const (
	reviewID = "9d8c7b6a-5f4e-4d3c-8b2a-190817263544"
	placeID  = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	userID   = "6f5e4d3c-2b1a-4098-8776-5a4b3c2d1e0f"
)

var columns = []string{"id", "text", "rating", "place_id", "user_id", "created_at", "updated_at"}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM reviews WHERE id = \$1`).
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(reviewID, "Great", 5, placeID, userID, now, now))

	rv, err := repo.Get(context.Background(), reviewID)
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, placeID, rv.PlaceID)
	assert.Equal(t, userID, rv.UserID)
}

func TestGetAllByUser(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM reviews WHERE user_id = \$1 ORDER BY created_at, id`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(reviewID, "Great", 5, placeID, userID, now, now))

	reviews, err := repo.GetAllByAttribute(context.Background(), "user_id", userID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, reviewID, reviews[0].ID)
}

func TestAddDuplicatePair(t *testing.T) {
	repo, mock := newRepo(t)

	rv, err := domain.NewReview(domain.ReviewFields{
		Text:    "Again",
		Rating:  domain.Int(4),
		PlaceID: placeID,
		UserID:  userID,
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO reviews`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_place_key"})

	err = repo.Add(context.Background(), rv)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock := newRepo(t)

	rv, err := domain.NewReview(domain.ReviewFields{
		Text:    "ok",
		Rating:  domain.Int(3),
		PlaceID: placeID,
		UserID:  userID,
	})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE reviews SET text = \$2, rating = \$3`).
		WithArgs(rv.ID, "ok", 3, rv.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM reviews WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(context.Background(), rv))
	assert.ErrorIs(t, repo.Delete(context.Background(), rv.ID), core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnknownAttribute(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.GetAllByAttribute(context.Background(), "text", "x")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
