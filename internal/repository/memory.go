// AngelaMos | 2026
// memory.go

package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/carterperez-dev/hbnb/internal/core"
)

// Memory keeps entities in insertion order behind a single RWMutex.
// Entities are cloned on the way in and on the way out so callers never
// share state with the store.
type Memory[T Entity[T]] struct {
	mu    sync.RWMutex
	name  string
	items map[string]T
	order []string
}

func NewMemory[T Entity[T]](name string) *Memory[T] {
	return &Memory[T]{
		name:  name,
		items: make(map[string]T),
	}
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("get %s: %w", m.name, core.ErrNotFound)
	}
	return item.Clone(), nil
}

func (m *Memory[T]) GetAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id].Clone())
	}
	return out, nil
}

func (m *Memory[T]) GetByAttribute(
	ctx context.Context,
	name string,
	value any,
) (T, error) {
	matches, err := m.GetAllByAttribute(ctx, name, value)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(matches) == 0 {
		var zero T
		return zero, fmt.Errorf("get %s by %s: %w", m.name, name, core.ErrNotFound)
	}
	return matches[0], nil
}

func (m *Memory[T]) GetAllByAttribute(
	_ context.Context,
	name string,
	value any,
) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []T
	for _, id := range m.order {
		item := m.items[id]
		attr, ok := item.Attribute(name)
		if !ok {
			return nil, fmt.Errorf(
				"get %s by %s: unknown attribute: %w",
				m.name,
				name,
				core.ErrInvalidInput,
			)
		}
		if attr == value {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (m *Memory[T]) Add(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := entity.Key()
	if _, exists := m.items[id]; exists {
		return fmt.Errorf("add %s: %w", m.name, core.ErrDuplicateKey)
	}
	m.items[id] = entity.Clone()
	m.order = append(m.order, id)
	return nil
}

func (m *Memory[T]) Update(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := entity.Key()
	if _, exists := m.items[id]; !exists {
		return fmt.Errorf("update %s: %w", m.name, core.ErrNotFound)
	}
	m.items[id] = entity.Clone()
	return nil
}

// Mutate runs fn against a copy of the stored entity while holding the
// write lock, so concurrent link updates to the same entity serialize.
func (m *Memory[T]) Mutate(_ context.Context, id string, fn func(T) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return fmt.Errorf("mutate %s: %w", m.name, core.ErrNotFound)
	}

	working := item.Clone()
	if err := fn(working); err != nil {
		return err
	}
	if working.Key() != id {
		return fmt.Errorf("mutate %s: key changed: %w", m.name, core.ErrInvalidInput)
	}

	m.items[id] = working
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[id]; !exists {
		return fmt.Errorf("delete %s: %w", m.name, core.ErrNotFound)
	}
	delete(m.items, id)
	for i, key := range m.order {
		if key == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory[T]) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}
