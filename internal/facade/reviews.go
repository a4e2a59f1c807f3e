// AngelaMos | 2026
// reviews.go

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

const (
	reasonOwnPlace        = "cannot review own place"
	reasonAlreadyReviewed = "already reviewed"
)

type ReviewInput struct {
	Text    string
	Rating  domain.Number
	PlaceID string
}

type ReviewUpdate struct {
	Text   *string
	Rating *domain.Number
}

func (f *Facade) CreateReview(
	ctx context.Context,
	actor Actor,
	in ReviewInput,
) (_ *domain.Review, err error) {
	ctx, done := f.begin(ctx, "CreateReview", attribute.String("place.id", in.PlaceID))
	defer done(&err)

	place, err := f.places.Get(ctx, in.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("create review: place: %w", err)
	}

	if _, err := f.users.Get(ctx, actor.ID); err != nil {
		return nil, fmt.Errorf("create review: user: %w", err)
	}

	if place.IsOwnedBy(actor.ID) {
		return nil, core.NewValidationError("", reasonOwnPlace)
	}

	reviewed, err := f.hasReviewed(ctx, actor.ID, place.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, core.NewValidationError("", reasonAlreadyReviewed)
	}

	review, err := domain.NewReview(domain.ReviewFields{
		Text:    in.Text,
		Rating:  in.Rating,
		PlaceID: place.ID,
		UserID:  actor.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := f.reviews.Add(ctx, review); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.NewValidationError("", reasonAlreadyReviewed)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if _, err := repository.Mutate(ctx, f.places, place.ID, func(p *domain.Place) error {
		p.AddReview(review.ID)
		return nil
	}); err != nil {
		if delErr := f.reviews.Delete(ctx, review.ID); delErr != nil {
			f.logger.ErrorContext(ctx, "rollback review after place update failure",
				"review_id", review.ID,
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("create review: link place: %w", err)
	}

	f.logger.InfoContext(ctx, "review created",
		"review_id", review.ID,
		"place_id", place.ID,
		"user_id", actor.ID,
	)

	return review, nil
}

func (f *Facade) hasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	existing, err := f.reviews.GetAllByAttribute(ctx, "user_id", userID)
	if err != nil {
		return false, fmt.Errorf("check existing reviews: %w", err)
	}
	for _, r := range existing {
		if r.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *Facade) UpdateReview(
	ctx context.Context,
	actor Actor,
	id string,
	in ReviewUpdate,
) (_ *domain.Review, err error) {
	ctx, done := f.begin(ctx, "UpdateReview", attribute.String("review.id", id))
	defer done(&err)

	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if !actor.IsAdmin && !actor.owns(review.UserID) {
		return nil, f.deny(ctx, "UpdateReview", actor, "only the author or an admin can update this review")
	}

	if err := review.Apply(domain.ReviewPatch{Text: in.Text, Rating: in.Rating}); err != nil {
		return nil, err
	}

	if err := f.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	f.logger.InfoContext(ctx, "review updated",
		"review_id", review.ID,
		"actor_id", actor.ID,
	)

	return review, nil
}

// DeleteReview removes the review from the store and from its place's
// review list.
func (f *Facade) DeleteReview(
	ctx context.Context,
	actor Actor,
	id string,
) (err error) {
	ctx, done := f.begin(ctx, "DeleteReview", attribute.String("review.id", id))
	defer done(&err)

	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if !actor.IsAdmin && !actor.owns(review.UserID) {
		return f.deny(ctx, "DeleteReview", actor, "only the author or an admin can delete this review")
	}

	if err := f.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	_, err = repository.Mutate(ctx, f.places, review.PlaceID, func(p *domain.Place) error {
		p.RemoveReview(id)
		return nil
	})
	switch {
	case errors.Is(err, core.ErrNotFound):
		f.logger.WarnContext(ctx, "deleted review referenced a missing place",
			"review_id", id,
			"place_id", review.PlaceID,
		)
	case err != nil:
		return fmt.Errorf("delete review: unlink place: %w", err)
	}

	f.logger.InfoContext(ctx, "review deleted",
		"review_id", id,
		"place_id", review.PlaceID,
		"actor_id", actor.ID,
	)

	return nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (f *Facade) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := f.reviews.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (f *Facade) ListReviewsByPlace(
	ctx context.Context,
	placeID string,
) ([]*domain.Review, error) {
	place, err := f.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return f.reviewsOf(ctx, place)
}

// reviewsOf follows the place's review list in insertion order, skipping
// ids whose review no longer exists.
func (f *Facade) reviewsOf(
	ctx context.Context,
	place *domain.Place,
) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0, len(place.ReviewIDs))
	for _, id := range place.ReviewIDs {
		review, err := f.reviews.Get(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load review %s: %w", id, err)
		}
		out = append(out, review)
	}
	return out, nil
}
