// AngelaMos | 2026
// dto.go

package amenity

import (
	"time"

	"github.com/carterperez-dev/hbnb/internal/domain"
)

type CreateAmenityRequest struct {
	Name string `json:"name"`
}

type UpdateAmenityRequest struct {
	Name *string `json:"name,omitempty"`
}

type AmenityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToAmenityResponse(a *domain.Amenity) AmenityResponse {
	return AmenityResponse{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAmenityResponseList(amenities []*domain.Amenity) []AmenityResponse {
	responses := make([]AmenityResponse, 0, len(amenities))
	for _, a := range amenities {
		responses = append(responses, ToAmenityResponse(a))
	}
	return responses
}
