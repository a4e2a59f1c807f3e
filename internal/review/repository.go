// AngelaMos | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

const reviewColumns = `id, text, rating, place_id, user_id, created_at, updated_at`

var attributeColumns = repository.Columns{
	"id":       "id",
	"place_id": "place_id",
	"user_id":  "user_id",
	"rating":   "rating",
}

// Repository stores reviews. The (user_id, place_id) unique constraint
// surfaces as core.ErrDuplicateKey from Add.
type Repository struct {
	db core.DBTX
}

var _ repository.Repository[*domain.Review] = (*Repository)(nil)

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Review, error) {
	if !core.IsUUID(id) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var rv domain.Review
	err := r.db.GetContext(ctx, &rv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at, id`

	var rows []domain.Review
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return pointers(rows), nil
}

func (r *Repository) GetByAttribute(
	ctx context.Context,
	name string,
	value any,
) (*domain.Review, error) {
	reviews, err := r.GetAllByAttribute(ctx, name, value)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("get review by %s: %w", name, core.ErrNotFound)
	}
	return reviews[0], nil
}

func (r *Repository) GetAllByAttribute(
	ctx context.Context,
	name string,
	value any,
) ([]*domain.Review, error) {
	col, err := attributeColumns.Lookup("review", name)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && col != "rating" && !core.IsUUID(s) {
		return []*domain.Review{}, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM reviews WHERE %s = $1 ORDER BY created_at, id`,
		reviewColumns,
		col,
	)

	var rows []domain.Review
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("get reviews by %s: %w", name, err)
	}

	return pointers(rows), nil
}

func (r *Repository) Add(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (id, text, rating, place_id, user_id,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rv.ID,
		rv.Text,
		rv.Rating,
		rv.PlaceID,
		rv.UserID,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create review: %w", core.TranslatePgError(err))
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, rv *domain.Review) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET text = $2, rating = $3, updated_at = $4 WHERE id = $1`,
		rv.ID,
		rv.Text,
		rv.Rating,
		rv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "update review")
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if !core.IsUUID(id) {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	return core.RequireAffected(result, "delete review")
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reviews`); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func pointers(rows []domain.Review) []*domain.Review {
	out := make([]*domain.Review, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}
