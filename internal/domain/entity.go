// AngelaMos | 2026
// entity.go

package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b Base) Key() string {
	return b.ID
}

func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// appendUnique appends id unless it is already present.
func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) ([]string, bool) {
	idx := slices.Index(ids, id)
	if idx < 0 {
		return ids, false
	}
	return slices.Delete(ids, idx, idx+1), true
}
