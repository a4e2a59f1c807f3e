// AngelaMos | 2026
// handler.go

package review

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const resource = "review"

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
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Get("/{reviewID}", h.GetReview)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.CreateReview)
			r.Put("/{reviewID}", h.UpdateReview)
			r.Delete("/{reviewID}", h.DeleteReview)
		})
	})
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	rv, err := h.facade.CreateReview(r.Context(), middleware.Actor(r.Context()), req.Input())
	if err != nil {
		// the place in the body is the resource that can be missing
		core.WriteError(w, err, "place")
		return
	}

	core.Created(w, ToReviewResponse(rv))
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviews(r.Context())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToReviewResponseList(reviews))
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	rv, err := h.facade.GetReview(r.Context(), chi.URLParam(r, "reviewID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToReviewResponse(rv))
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	rv, err := h.facade.UpdateReview(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "reviewID"),
		req.Update(),
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToReviewResponse(rv))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	err := h.facade.DeleteReview(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "reviewID"),
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.NoContent(w)
}
