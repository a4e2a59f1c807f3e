// AngelaMos | 2026
// repository_test.go

package place

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
	placeID = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	ownerID = "6f5e4d3c-2b1a-4098-8776-5a4b3c2d1e0f"
	wifiID  = "3a2b1c0d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	poolID  = "4b3c2d1e-5f60-4b7c-9d8e-0f1a2b3c4d5e"
)

var columns = []string{
	"id", "title", "description", "price", "latitude", "longitude", "owner_id",
	"created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func newPlace(t *testing.T, amenities ...string) *domain.Place {
	t.Helper()
	p, err := domain.NewPlace(domain.PlaceFields{
		Title:     "Loft",
		Price:     domain.Float(120),
		Latitude:  domain.Float(48.85),
		Longitude: domain.Float(2.35),
		OwnerID:   ownerID,
	})
	require.NoError(t, err)
	p.SetAmenities(amenities)
	return p
}

func TestGetLoadsLinks(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM places WHERE id = \$1`).
		WithArgs(placeID).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(placeID, "Loft", "", 120.0, 48.85, 2.35, ownerID, now, now))
	mock.ExpectQuery(`SELECT amenity_id FROM place_amenities WHERE place_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"amenity_id"}).AddRow(wifiID))
	mock.ExpectQuery(`SELECT id FROM reviews WHERE place_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.Get(context.Background(), placeID)
	require.NoError(t, err)

	assert.Equal(t, 120.0, p.Price)
	assert.Equal(t, ownerID, p.OwnerID)
	assert.Equal(t, []string{wifiID}, p.AmenityIDs)
	assert.Empty(t, p.ReviewIDs)
	assert.NotNil(t, p.ReviewIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllGroupsLinks(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()
	other := "8e7d6c5b-4a39-4281-9706-f5e4d3c2b1a0"

	mock.ExpectQuery(`FROM places ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(placeID, "Loft", "", 120.0, 48.85, 2.35, ownerID, now, now).
			AddRow(other, "Barn", "", 50.0, 0.0, 0.0, ownerID, now, now))
	mock.ExpectQuery(`FROM place_amenities`).
		WillReturnRows(sqlmock.NewRows([]string{"place_id", "id"}).
			AddRow(placeID, wifiID).
			AddRow(placeID, poolID))
	mock.ExpectQuery(`SELECT place_id, id\s+FROM reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"place_id", "id"}).AddRow(other, "r1"))

	places, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, []string{wifiID, poolID}, places[0].AmenityIDs)
	assert.Empty(t, places[0].ReviewIDs)
	assert.Empty(t, places[1].AmenityIDs)
	assert.Equal(t, []string{"r1"}, places[1].ReviewIDs)
}

func TestAddInsertsAmenityLinks(t *testing.T) {
	repo, mock := newRepo(t)
	p := newPlace(t, wifiID, poolID)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO places`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO place_amenities`).
		WithArgs(p.ID, wifiID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO place_amenities`).
		WithArgs(p.ID, poolID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Add(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRollsBackOnMissingAmenity(t *testing.T) {
	repo, mock := newRepo(t)
	p := newPlace(t, wifiID)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO places`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO place_amenities`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "place_amenities_amenity_id_fkey"})
	mock.ExpectRollback()

	err := repo.Add(context.Background(), p)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReplacesAmenities(t *testing.T) {
	repo, mock := newRepo(t)
	p := newPlace(t, poolID)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE places`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM place_amenities WHERE place_id = \$1`).
		WithArgs(p.ID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO place_amenities`).
		WithArgs(p.ID, poolID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingPlace(t *testing.T) {
	repo, mock := newRepo(t)
	p := newPlace(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE places`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Update(context.Background(), p), core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllByOwner(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM places WHERE owner_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(columns))

	places, err := repo.GetAllByAttribute(context.Background(), "owner_id", ownerID)
	require.NoError(t, err)
	assert.Empty(t, places)

	places, err = repo.GetAllByAttribute(context.Background(), "owner_id", "nobody")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.NoError(t, mock.ExpectationsWereMet())
}
