// AngelaMos | 2026
// dto.go

package place

import (
	"time"

	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/facade"
)

// CreatePlaceRequest accepts numbers either as JSON numbers or numeric
// strings. Any owner_id in the body is ignored; the caller owns the place.
type CreatePlaceRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       domain.Number `json:"price"`
	Latitude    domain.Number `json:"latitude"`
	Longitude   domain.Number `json:"longitude"`
	Amenities   []string      `json:"amenities" validate:"omitempty,dive,required"`
}

func (r CreatePlaceRequest) Input() facade.PlaceInput {
	return facade.PlaceInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Amenities:   r.Amenities,
	}
}

// UpdatePlaceRequest leaves absent and null fields unchanged. A present
// amenities list replaces the whole set.
type UpdatePlaceRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *domain.Number `json:"price,omitempty"`
	Latitude    *domain.Number `json:"latitude,omitempty"`
	Longitude   *domain.Number `json:"longitude,omitempty"`
	Amenities   *[]string      `json:"amenities,omitempty" validate:"omitempty,dive,required"`
}

func (r UpdatePlaceRequest) Update() facade.PlaceUpdate {
	return facade.PlaceUpdate{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Amenities:   r.Amenities,
	}
}

type PlaceResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"`
	Amenities   []string  `json:"amenities"`
	Reviews     []string  `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PlaceSummary struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OwnerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AmenitySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReviewSummary struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

type PlaceDetailResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	OwnerID     string           `json:"owner_id"`
	Owner       *OwnerSummary    `json:"owner"`
	Amenities   []AmenitySummary `json:"amenities"`
	Reviews     []ReviewSummary  `json:"reviews"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func ToPlaceResponse(p *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.OwnerID,
		Amenities:   orEmpty(p.AmenityIDs),
		Reviews:     orEmpty(p.ReviewIDs),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPlaceSummaryList(places []*domain.Place) []PlaceSummary {
	out := make([]PlaceSummary, 0, len(places))
	for _, p := range places {
		out = append(out, PlaceSummary{
			ID:        p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}
	return out
}

func ToPlaceDetailResponse(d *facade.PlaceDetails) PlaceDetailResponse {
	p := d.Place
	resp := PlaceDetailResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		OwnerID:     p.OwnerID,
		Amenities:   ToAmenitySummaryList(d.Amenities),
		Reviews:     ToReviewSummaryList(d.Reviews),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if d.Owner != nil {
		resp.Owner = &OwnerSummary{
			ID:        d.Owner.ID,
			FirstName: d.Owner.FirstName,
			LastName:  d.Owner.LastName,
			Email:     d.Owner.Email,
		}
	}

	return resp
}

func ToAmenitySummaryList(amenities []*domain.Amenity) []AmenitySummary {
	out := make([]AmenitySummary, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, AmenitySummary{ID: a.ID, Name: a.Name})
	}
	return out
}

func ToReviewSummaryList(reviews []*domain.Review) []ReviewSummary {
	out := make([]ReviewSummary, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewSummary{
			ID:     r.ID,
			Text:   r.Text,
			Rating: r.Rating,
			UserID: r.UserID,
		})
	}
	return out
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
