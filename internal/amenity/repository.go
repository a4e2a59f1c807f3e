// AngelaMos | 2026
// repository.go

package amenity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

const amenityColumns = `id, name, created_at, updated_at`

var attributeColumns = repository.Columns{
	"id":   "id",
	"name": "name",
}

type Repository struct {
	db core.DBTX
}

var _ repository.Repository[*domain.Amenity] = (*Repository)(nil)

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Amenity, error) {
	if !core.IsUUID(id) {
		return nil, fmt.Errorf("get amenity: %w", core.ErrNotFound)
	}

	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE id = $1`

	var a domain.Amenity
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get amenity: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get amenity: %w", err)
	}

	return &a, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities ORDER BY created_at, id`

	var rows []domain.Amenity
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
	}

	return pointers(rows), nil
}

func (r *Repository) GetByAttribute(
	ctx context.Context,
	name string,
	value any,
) (*domain.Amenity, error) {
	amenities, err := r.GetAllByAttribute(ctx, name, value)
	if err != nil {
		return nil, err
	}
	if len(amenities) == 0 {
		return nil, fmt.Errorf("get amenity by %s: %w", name, core.ErrNotFound)
	}
	return amenities[0], nil
}

func (r *Repository) GetAllByAttribute(
	ctx context.Context,
	name string,
	value any,
) ([]*domain.Amenity, error) {
	col, err := attributeColumns.Lookup("amenity", name)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && col == "id" && !core.IsUUID(s) {
		return []*domain.Amenity{}, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM amenities WHERE %s = $1 ORDER BY created_at, id`,
		amenityColumns,
		col,
	)

	var rows []domain.Amenity
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("get amenities by %s: %w", name, err)
	}

	return pointers(rows), nil
}

func (r *Repository) Add(ctx context.Context, a *domain.Amenity) error {
	query := `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create amenity: %w", core.TranslatePgError(err))
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, a *domain.Amenity) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE amenities SET name = $2, updated_at = $3 WHERE id = $1`,
		a.ID,
		a.Name,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update amenity: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "update amenity")
}

// Delete fails with core.ErrConflict while a place still links the
// amenity.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !core.IsUUID(id) {
		return fmt.Errorf("delete amenity: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete amenity: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "delete amenity")
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM amenities`); err != nil {
		return 0, fmt.Errorf("count amenities: %w", err)
	}
	return n, nil
}

func pointers(rows []domain.Amenity) []*domain.Amenity {
	out := make([]*domain.Amenity, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}
