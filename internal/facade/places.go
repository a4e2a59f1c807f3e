// AngelaMos | 2026
// places.go

package facade

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

type PlaceInput struct {
	Title       string
	Description string
	Price       domain.Number
	Latitude    domain.Number
	Longitude   domain.Number
	Amenities   []string
}

// PlaceUpdate leaves nil fields untouched. A non-nil Amenities replaces
// the whole set, including with an empty one.
type PlaceUpdate struct {
	Title       *string
	Description *string
	Price       *domain.Number
	Latitude    *domain.Number
	Longitude   *domain.Number
	Amenities   *[]string
}

type PlaceDetails struct {
	Place     *domain.Place
	Owner     *domain.User
	Amenities []*domain.Amenity
	Reviews   []*domain.Review
}

func (f *Facade) CreatePlace(
	ctx context.Context,
	actor Actor,
	in PlaceInput,
) (_ *domain.Place, err error) {
	ctx, done := f.begin(ctx, "CreatePlace")
	defer done(&err)

	owner, err := f.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create place: owner: %w", err)
	}

	place, err := domain.NewPlace(domain.PlaceFields{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     owner.ID,
	})
	if err != nil {
		return nil, err
	}

	amenityIDs, err := f.resolveAmenities(ctx, in.Amenities)
	if err != nil {
		return nil, err
	}
	place.SetAmenities(amenityIDs)

	if err := f.places.Add(ctx, place); err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}

	if _, err := repository.Mutate(ctx, f.users, owner.ID, func(u *domain.User) error {
		u.AddPlace(place.ID)
		return nil
	}); err != nil {
		if delErr := f.places.Delete(ctx, place.ID); delErr != nil {
			f.logger.ErrorContext(ctx, "rollback place after owner update failure",
				"place_id", place.ID,
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("create place: link owner: %w", err)
	}

	f.logger.InfoContext(ctx, "place created",
		"place_id", place.ID,
		"owner_id", owner.ID,
		"amenities", len(place.AmenityIDs),
	)

	return place, nil
}

// resolveAmenities checks that every id names an existing amenity. It
// stops at the first unknown id.
func (f *Facade) resolveAmenities(
	ctx context.Context,
	ids []string,
) ([]string, error) {
	resolved := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := f.amenities.Get(ctx, id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, core.NewValidationError(
					"amenities",
					fmt.Sprintf("amenity with id %s does not exist", id),
				)
			}
			return nil, fmt.Errorf("resolve amenity %s: %w", id, err)
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

func (f *Facade) UpdatePlace(
	ctx context.Context,
	actor Actor,
	id string,
	in PlaceUpdate,
) (_ *domain.Place, err error) {
	ctx, done := f.begin(ctx, "UpdatePlace", attribute.String("place.id", id))
	defer done(&err)

	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update place: %w", err)
	}

	if !actor.IsAdmin && !actor.owns(place.OwnerID) {
		return nil, f.deny(ctx, "UpdatePlace", actor, "only the owner or an admin can update this place")
	}

	var amenityIDs []string
	if in.Amenities != nil {
		if amenityIDs, err = f.resolveAmenities(ctx, *in.Amenities); err != nil {
			return nil, err
		}
	}

	patch := domain.PlacePatch{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}

	place, err = repository.Mutate(ctx, f.places, id, func(p *domain.Place) error {
		if err := p.Apply(patch); err != nil {
			return err
		}
		if in.Amenities != nil {
			p.SetAmenities(amenityIDs)
		}
		return nil
	})
	if err != nil {
		if _, ok := core.AsValidationError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("update place: %w", err)
	}

	f.logger.InfoContext(ctx, "place updated",
		"place_id", place.ID,
		"actor_id", actor.ID,
		"amenities_replaced", in.Amenities != nil,
	)

	return place, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	return place, nil
}

func (f *Facade) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	places, err := f.places.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return places, nil
}

// GetPlaceDetails expands a place with its owner, amenities and reviews.
func (f *Facade) GetPlaceDetails(
	ctx context.Context,
	id string,
) (_ *PlaceDetails, err error) {
	ctx, done := f.begin(ctx, "GetPlaceDetails", attribute.String("place.id", id))
	defer done(&err)

	place, err := f.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &PlaceDetails{Place: place}

	owner, err := f.users.Get(ctx, place.OwnerID)
	switch {
	case err == nil:
		details.Owner = owner
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("get place owner: %w", err)
	}

	if details.Amenities, err = f.amenitiesOf(ctx, place); err != nil {
		return nil, err
	}
	if details.Reviews, err = f.reviewsOf(ctx, place); err != nil {
		return nil, err
	}

	return details, nil
}

func (f *Facade) ListPlaceAmenities(
	ctx context.Context,
	placeID string,
) ([]*domain.Amenity, error) {
	place, err := f.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return f.amenitiesOf(ctx, place)
}

func (f *Facade) amenitiesOf(
	ctx context.Context,
	place *domain.Place,
) ([]*domain.Amenity, error) {
	out := make([]*domain.Amenity, 0, len(place.AmenityIDs))
	for _, id := range place.AmenityIDs {
		amenity, err := f.amenities.Get(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load amenity %s: %w", id, err)
		}
		out = append(out, amenity)
	}
	return out, nil
}
