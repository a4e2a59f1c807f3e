// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

const userColumns = `id, first_name, last_name, email, password_hash, is_admin,
	       created_at, updated_at`

var attributeColumns = repository.Columns{
	"id":         "id",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
	"is_admin":   "is_admin",
}

// Repository stores users in PostgreSQL. A user's place ids are read
// from places.owner_id and never written here.
type Repository struct {
	db core.DBTX
}

var _ repository.Repository[*domain.User] = (*Repository)(nil)

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.User, error) {
	if !core.IsUUID(id) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u domain.User
	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := r.loadPlaceIDs(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	var rows []domain.User
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var owned []struct {
		OwnerID string `db:"owner_id"`
		ID      string `db:"id"`
	}
	if err := r.db.SelectContext(ctx, &owned,
		`SELECT owner_id, id FROM places ORDER BY created_at, id`,
	); err != nil {
		return nil, fmt.Errorf("list user places: %w", err)
	}

	byOwner := make(map[string][]string, len(rows))
	for _, o := range owned {
		byOwner[o.OwnerID] = append(byOwner[o.OwnerID], o.ID)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		rows[i].PlaceIDs = byOwner[rows[i].ID]
		users = append(users, &rows[i])
	}

	return users, nil
}

func (r *Repository) GetByAttribute(
	ctx context.Context,
	name string,
	value any,
) (*domain.User, error) {
	users, err := r.GetAllByAttribute(ctx, name, value)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("get user by %s: %w", name, core.ErrNotFound)
	}
	return users[0], nil
}

func (r *Repository) GetAllByAttribute(
	ctx context.Context,
	name string,
	value any,
) ([]*domain.User, error) {
	col, err := attributeColumns.Lookup("user", name)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && col == "id" && !core.IsUUID(s) {
		return []*domain.User{}, nil
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE %s = $1 ORDER BY created_at, id`,
		userColumns,
		col,
	)

	var rows []domain.User
	if err := r.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("get users by %s: %w", name, err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		if err := r.loadPlaceIDs(ctx, &rows[i]); err != nil {
			return nil, err
		}
		users = append(users, &rows[i])
	}

	return users, nil
}

func (r *Repository) Add(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash,
		                   is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", core.TranslatePgError(err))
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5,
		    is_admin = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "update user")
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if !core.IsUUID(id) {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", core.TranslatePgError(err))
	}

	return core.RequireAffected(result, "delete user")
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *Repository) loadPlaceIDs(ctx context.Context, u *domain.User) error {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT id FROM places WHERE owner_id = $1 ORDER BY created_at, id`,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("load user places: %w", err)
	}
	u.PlaceIDs = ids
	return nil
}
