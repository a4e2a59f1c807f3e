// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const resource = "user"

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
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{userID}", h.GetUser)

		r.With(authenticator, adminOnly).Post("/", h.CreateUser)
		r.With(authenticator).Put("/{userID}", h.UpdateUser)
	})
}

// CreateUser registers a user (admin only).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	u, err := h.facade.CreateUser(r.Context(), req.Input())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.facade.ListUsers(r.Context())
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.facade.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToUserResponse(u))
}

// UpdateUser applies a partial update. Non-admins may only edit their own
// names.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	u, err := h.facade.UpdateUser(
		r.Context(),
		middleware.Actor(r.Context()),
		chi.URLParam(r, "userID"),
		req.Update(),
	)
	if err != nil {
		core.WriteError(w, err, resource)
		return
	}

	core.OK(w, ToUserResponse(u))
}
