// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/facade"
)

type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,max=255"`
	Password  string `json:"password"   validate:"required,max=128"`
	IsAdmin   bool   `json:"is_admin"`
}

func (r CreateUserRequest) Input() facade.UserInput {
	return facade.UserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		IsAdmin:   r.IsAdmin,
	}
}

// UpdateUserRequest is a partial update. Absent and null fields are left
// unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"    validate:"omitempty,max=255"`
	Password  *string `json:"password,omitempty" validate:"omitempty,max=128"`
	IsAdmin   *bool   `json:"is_admin,omitempty"`
}

func (r UpdateUserRequest) Update() facade.UserUpdate {
	return facade.UserUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		IsAdmin:   r.IsAdmin,
	}
}

type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	PlaceIDs  []string  `json:"place_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *domain.User) UserResponse {
	placeIDs := u.PlaceIDs
	if placeIDs == nil {
		placeIDs = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		PlaceIDs:  placeIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses
}
