// AngelaMos | 2026
// amenities.go

package facade

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
)

type AmenityInput struct {
	Name string
}

type AmenityUpdate struct {
	Name *string
}

func (f *Facade) CreateAmenity(
	ctx context.Context,
	actor Actor,
	in AmenityInput,
) (_ *domain.Amenity, err error) {
	ctx, done := f.begin(ctx, "CreateAmenity")
	defer done(&err)

	if !actor.IsAdmin {
		return nil, f.deny(ctx, "CreateAmenity", actor, "admin privileges required")
	}

	amenity, err := domain.NewAmenity(in.Name)
	if err != nil {
		return nil, err
	}

	if err := f.amenities.Add(ctx, amenity); err != nil {
		return nil, fmt.Errorf("create amenity: %w", err)
	}

	f.logger.InfoContext(ctx, "amenity created", "amenity_id", amenity.ID)

	return amenity, nil
}

func (f *Facade) UpdateAmenity(
	ctx context.Context,
	actor Actor,
	id string,
	in AmenityUpdate,
) (_ *domain.Amenity, err error) {
	ctx, done := f.begin(ctx, "UpdateAmenity", attribute.String("amenity.id", id))
	defer done(&err)

	if !actor.IsAdmin {
		return nil, f.deny(ctx, "UpdateAmenity", actor, "admin privileges required")
	}

	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update amenity: %w", err)
	}

	if err := amenity.Apply(domain.AmenityPatch{Name: in.Name}); err != nil {
		return nil, err
	}

	if err := f.amenities.Update(ctx, amenity); err != nil {
		return nil, fmt.Errorf("update amenity: %w", err)
	}

	f.logger.InfoContext(ctx, "amenity updated", "amenity_id", amenity.ID)

	return amenity, nil
}

// DeleteAmenity refuses to remove an amenity that any place still lists.
func (f *Facade) DeleteAmenity(
	ctx context.Context,
	actor Actor,
	id string,
) (err error) {
	ctx, done := f.begin(ctx, "DeleteAmenity", attribute.String("amenity.id", id))
	defer done(&err)

	if !actor.IsAdmin {
		return f.deny(ctx, "DeleteAmenity", actor, "admin privileges required")
	}

	if _, err := f.amenities.Get(ctx, id); err != nil {
		return fmt.Errorf("delete amenity: %w", err)
	}

	places, err := f.places.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("delete amenity: %w", err)
	}

	var referencing int
	for _, p := range places {
		if p.HasAmenity(id) {
			referencing++
		}
	}
	if referencing > 0 {
		return core.Reason(
			core.ErrConflict,
			"amenity is still attached to %d place(s)",
			referencing,
		)
	}

	if err := f.amenities.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete amenity: %w", err)
	}

	f.logger.InfoContext(ctx, "amenity deleted", "amenity_id", id)

	return nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get amenity: %w", err)
	}
	return amenity, nil
}

func (f *Facade) ListAmenities(ctx context.Context) ([]*domain.Amenity, error) {
	amenities, err := f.amenities.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
	}
	return amenities, nil
}
