// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"errors"
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
	aliceID = "0b7c6a1e-3f52-4d8e-9a41-2c5d8e7f6a10"
	placeA  = "5e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c0b"
	placeB  = "7f6e5d4c-3b2a-4918-8776-655443322110"
)

var columns = []string{
	"id", "first_name", "last_name", "email", "password_hash", "is_admin",
	"created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func aliceRow() *sqlmock.Rows {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return sqlmock.NewRows(columns).
		AddRow(aliceID, "Alice", "Smith", "alice@example.com", "hash", false, now, now)
}

func TestGetLoadsPlaceIDs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, first_name, .* FROM users WHERE id = \$1`).
		WithArgs(aliceID).
		WillReturnRows(aliceRow())
	mock.ExpectQuery(`SELECT id FROM places WHERE owner_id = \$1`).
		WithArgs(aliceID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(placeA).AddRow(placeB))

	u, err := repo.Get(context.Background(), aliceID)
	require.NoError(t, err)

	assert.Equal(t, "Alice", u.FirstName)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, []string{placeA, placeB}, u.PlaceIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.Get(context.Background(), aliceID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = repo.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllGroupsPlaces(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM users ORDER BY created_at, id`).WillReturnRows(aliceRow())
	mock.ExpectQuery(`SELECT owner_id, id FROM places`).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "id"}).AddRow(aliceID, placeA))

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, []string{placeA}, users[0].PlaceIDs)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(aliceRow())
	mock.ExpectQuery(`SELECT id FROM places WHERE owner_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.GetByAttribute(context.Background(), "email", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, aliceID, u.ID)
	assert.Empty(t, u.PlaceIDs)
}

func TestGetByUnknownAttribute(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.GetByAttribute(context.Background(), "password_hash", "x")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAddDuplicateEmail(t *testing.T) {
	repo, mock := newRepo(t)

	u, err := domain.NewUser(domain.UserFields{FirstName: "A", LastName: "B", Email: "a@b.co"})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Add(context.Background(), u)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateMissingRow(t *testing.T) {
	repo, mock := newRepo(t)

	u, err := domain.NewUser(domain.UserFields{FirstName: "A", LastName: "B", Email: "a@b.co"})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), u)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteAndCount(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(aliceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	require.NoError(t, repo.Delete(context.Background(), aliceID))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryErrorIsWrapped(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("connection refused")

	mock.ExpectQuery(`FROM users ORDER BY`).WillReturnError(boom)

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, boom)
}
