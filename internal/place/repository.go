// AngelaMos | 2026
// repository.go

package place

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

const placeColumns = `id, title, description, price, latitude, longitude, owner_id,
	       created_at, updated_at`

var attributeColumns = repository.Columns{
	"id":       "id",
	"title":    "title",
	"owner_id": "owner_id",
}

// Repository stores places and their amenity links. Review ids are
// derived from reviews.place_id and are read-only here.
type Repository struct {
	db *sqlx.DB
}

var _ repository.Repository[*domain.Place] = (*Repository)(nil)

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Place, error) {
	if !core.IsUUID(id) {
		return nil, fmt.Errorf("get place: %w", core.ErrNotFound)
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	var p domain.Place
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get place: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}

	if err := r.loadLinks(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

type link struct {
	PlaceID string `db:"place_id"`
	ID      string `db:"id"`
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at, id`

	var rows []domain.Place
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	var amenityLinks []link
	if err := r.db.SelectContext(ctx, &amenityLinks, `
		SELECT place_id, amenity_id AS id
		FROM place_amenities
		ORDER BY place_id, amenity_id`,
	); err != nil {
		return nil, fmt.Errorf("list place amenities: %w", err)
	}

	var reviewLinks []link
	if err := r.db.SelectContext(ctx, &reviewLinks, `
		SELECT place_id, id
		FROM reviews
		ORDER BY created_at, id`,
	); err != nil {
		return nil, fmt.Errorf("list place reviews: %w", err)
	}

	amenities := groupLinks(amenityLinks)
	reviews := groupLinks(reviewLinks)

	places := make([]*domain.Place, 0, len(rows))
	for i := range rows {
		rows[i].AmenityIDs = nonNil(amenities[rows[i].ID])
		rows[i].ReviewIDs = nonNil(reviews[rows[i].ID])
		places = append(places, &rows[i])
	}

	return places, nil
}

func (r *Repository) GetByAttribute(
	ctx context.Context,
	name string,
	value any,
) (*domain.Place, error) {
	places, err := r.GetAllByAttribute(ctx, name, value)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("get place by %s: %w", name, core.ErrNotFound)
	}
	return places[0], nil
}

func (r *Repository) GetAllByAttribute(
	ctx context.Context,
	name string,
	value any,
) ([]*domain.Place, error) {
	col, err := attributeColumns.Lookup("place", name)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && col != "title" && !core.IsUUID(s) {
		return []*domain.Place{}, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM places WHERE %s = $1 ORDER BY created_at, id`,
		placeColumns,
		col,
	)

	var rows []domain.Place
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("get places by %s: %w", name, err)
	}

	places := make([]*domain.Place, 0, len(rows))
	for i := range rows {
		if err := r.loadLinks(ctx, &rows[i]); err != nil {
			return nil, err
		}
		places = append(places, &rows[i])
	}

	return places, nil
}

func (r *Repository) Add(ctx context.Context, p *domain.Place) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO places (id, title, description, price, latitude,
			                    longitude, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		_, err := tx.ExecContext(ctx, query,
			p.ID,
			p.Title,
			p.Description,
			p.Price,
			p.Latitude,
			p.Longitude,
			p.OwnerID,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create place: %w", core.TranslatePgError(err))
		}

		return insertAmenities(ctx, tx, p)
	})
}

// Update rewrites the scalar columns and replaces the amenity links in
// one transaction.
func (r *Repository) Update(ctx context.Context, p *domain.Place) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE places
			SET title = $2, description = $3, price = $4, latitude = $5,
			    longitude = $6, updated_at = $7
			WHERE id = $1`

		result, err := tx.ExecContext(ctx, query,
			p.ID,
			p.Title,
			p.Description,
			p.Price,
			p.Latitude,
			p.Longitude,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update place: %w", core.TranslatePgError(err))
		}
		if err := core.RequireAffected(result, "update place"); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM place_amenities WHERE place_id = $1`, p.ID,
		); err != nil {
			return fmt.Errorf("clear place amenities: %w", err)
		}

		return insertAmenities(ctx, tx, p)
	})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if !core.IsUUID(id) {
		return fmt.Errorf("delete place: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete place: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "delete place")
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM places`); err != nil {
		return 0, fmt.Errorf("count places: %w", err)
	}
	return n, nil
}

func (r *Repository) loadLinks(ctx context.Context, p *domain.Place) error {
	amenityIDs := []string{}
	if err := r.db.SelectContext(ctx, &amenityIDs,
		`SELECT amenity_id FROM place_amenities WHERE place_id = $1 ORDER BY amenity_id`,
		p.ID,
	); err != nil {
		return fmt.Errorf("load place amenities: %w", err)
	}

	reviewIDs := []string{}
	if err := r.db.SelectContext(ctx, &reviewIDs,
		`SELECT id FROM reviews WHERE place_id = $1 ORDER BY created_at, id`,
		p.ID,
	); err != nil {
		return fmt.Errorf("load place reviews: %w", err)
	}

	p.AmenityIDs = amenityIDs
	p.ReviewIDs = reviewIDs
	return nil
}

func insertAmenities(ctx context.Context, tx *sqlx.Tx, p *domain.Place) error {
	for _, amenityID := range p.AmenityIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO place_amenities (place_id, amenity_id) VALUES ($1, $2)`,
			p.ID,
			amenityID,
		)
		if err != nil {
			return fmt.Errorf("link amenity %s: %w", amenityID, core.TranslatePgError(err))
		}
	}
	return nil
}

func groupLinks(links []link) map[string][]string {
	out := make(map[string][]string)
	for _, l := range links {
		out[l.PlaceID] = append(out[l.PlaceID], l.ID)
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
