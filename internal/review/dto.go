// AngelaMos | 2026
// dto.go

package review

import (
	"time"

	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/facade"
)

// CreateReviewRequest ignores any user_id in the body; the author is the
// authenticated caller.
type CreateReviewRequest struct {
	Text    string        `json:"text"`
	Rating  domain.Number `json:"rating"`
	PlaceID string        `json:"place_id" validate:"required"`
}

func (r CreateReviewRequest) Input() facade.ReviewInput {
	return facade.ReviewInput{
		Text:    r.Text,
		Rating:  r.Rating,
		PlaceID: r.PlaceID,
	}
}

type UpdateReviewRequest struct {
	Text   *string        `json:"text,omitempty"`
	Rating *domain.Number `json:"rating,omitempty"`
}

func (r UpdateReviewRequest) Update() facade.ReviewUpdate {
	return facade.ReviewUpdate{Text: r.Text, Rating: r.Rating}
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Text:      r.Text,
		Rating:    r.Rating,
		UserID:    r.UserID,
		PlaceID:   r.PlaceID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToReviewResponseList(reviews []*domain.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, ToReviewResponse(r))
	}
	return responses
}
