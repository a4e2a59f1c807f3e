// AngelaMos | 2026
// handler.go

package place

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const resource = "place"

type Handler struct {
	facade    *facade.Facade
	validator *validator.Validate
}

func NewHandler(f *facade.Facade) *Handler {
	return &Handler{
		facade:    f,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/places", func(r chi.Router) {
		r.Get("/", h.ListPlaces)
		r.Get("/{placeID}", h.GetPlace)
		r.Get("/{placeID}/reviews", h.ListPlaceReviews)
		r.Get("/{placeID}/amenities", h.ListPlaceAmenities)

		r.With(authenticator).Post("/", h.CreatePlace)
		r.With(authenticator).Put("/{placeID}", h.UpdatePlace)
	})
}

func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req CreatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	p, err := h.facade.CreatePlace(r.Context(), middleware.Actor(r.Context()), req.Input())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.Created(w, ToPlaceResponse(p))
}

func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.facade.ListPlaces(r.Context())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToPlaceSummaryList(places))
}

// GetPlace returns the place with its owner, amenities and reviews
// expanded.
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	details, err := h.facade.GetPlaceDetails(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToPlaceDetailResponse(details))
}

func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	p, err := h.facade.UpdatePlace(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "placeID"),
		req.Update(),
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToPlaceResponse(p))
}

func (h *Handler) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviewsByPlace(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToReviewSummaryList(reviews))
}

func (h *Handler) ListPlaceAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.ListPlaceAmenities(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToAmenitySummaryList(amenities))
}
