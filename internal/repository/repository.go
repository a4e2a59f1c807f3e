// AngelaMos | 2026
// repository.go

// Package repository defines the storage contract shared by every entity
// type and an in-memory implementation of it.
package repository

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/hbnb/internal/core"
)

type Entity[T any] interface {
	Key() string
	Attribute(name string) (any, bool)
	Clone() T
}

// Repository is a keyed store for one entity type. Lookups of absent
// keys return core.ErrNotFound. Update persists the whole entity; partial
// field application is the caller's job.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetByAttribute(ctx context.Context, name string, value any) (T, error)
	GetAllByAttribute(ctx context.Context, name string, value any) ([]T, error)
	Add(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Mutator is implemented by stores that can apply a change to the stored
// entity atomically. fn works on a private copy; an error from fn leaves
// the stored entity untouched and is returned as is.
type Mutator[T any] interface {
	Mutate(ctx context.Context, id string, fn func(T) error) error
}

// Mutate applies fn to the entity stored under id and returns a copy of
// the result. Stores without a Mutator fall back to Get, fn, Update,
// which is only safe when the store derives link lists on read.
func Mutate[T Entity[T]](
	ctx context.Context,
	repo Repository[T],
	id string,
	fn func(T) error,
) (T, error) {
	var out T

	if m, ok := repo.(Mutator[T]); ok {
		err := m.Mutate(ctx, id, func(entity T) error {
			if err := fn(entity); err != nil {
				return err
			}
			out = entity.Clone()
			return nil
		})
		return out, err
	}

	entity, err := repo.Get(ctx, id)
	if err != nil {
		return out, err
	}
	if err := fn(entity); err != nil {
		return out, err
	}
	if err := repo.Update(ctx, entity); err != nil {
		return out, err
	}
	return entity, nil
}

// Columns whitelists the attributes a SQL store can filter on, mapping
// each attribute name to its column.
type Columns map[string]string

func (c Columns) Lookup(entity, name string) (string, error) {
	col, ok := c[name]
	if !ok {
		return "", fmt.Errorf(
			"get %s by %s: unknown attribute: %w",
			entity,
			name,
			core.ErrInvalidInput,
		)
	}
	return col, nil
}
