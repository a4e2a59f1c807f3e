// AngelaMos | 2026
// handler.go

package amenity

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const resource = "amenity"

type Handler struct {
	facade *facade.Facade
}

func NewHandler(f *facade.Facade) *Handler {
	return &Handler{facade: f}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/amenities", func(r chi.Router) {
		r.Get("/", h.ListAmenities)
		r.Get("/{amenityID}", h.GetAmenity)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.CreateAmenity)
			r.Put("/{amenityID}", h.UpdateAmenity)
			r.Delete("/{amenityID}", h.DeleteAmenity)
		})
	})
}

func (h *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var req CreateAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.facade.CreateAmenity(
		r.Context(),
		middleware.Actor(r.Context()),
		facade.AmenityInput{Name: req.Name},
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.Created(w, ToAmenityResponse(a))
}

func (h *Handler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.ListAmenities(r.Context())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToAmenityResponseList(amenities))
}

func (h *Handler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	a, err := h.facade.GetAmenity(r.Context(), chi.URLParam(r, "amenityID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToAmenityResponse(a))
}

func (h *Handler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	var req UpdateAmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.facade.UpdateAmenity(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "amenityID"),
		facade.AmenityUpdate{Name: req.Name},
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToAmenityResponse(a))
}

// DeleteAmenity answers 409 while any place still lists the amenity.
func (h *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	err := h.facade.DeleteAmenity(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "amenityID"),
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.NoContent(w)
}
