// AngelaMos | 2026
// user.go

package domain

import (
	"slices"
	"strings"
)

type User struct {
	Base
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	IsAdmin      bool     `db:"is_admin"`
	PlaceIDs     []string `db:"-"`
}

type UserFields struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	IsAdmin      *bool
}

func (p UserPatch) ChangesCredentials() bool {
	return p.Email != nil || p.PasswordHash != nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewUser(f UserFields) (*User, error) {
	if err := ValidateName("first_name", f.FirstName); err != nil {
		return nil, err
	}
	if err := ValidateName("last_name", f.LastName); err != nil {
		return nil, err
	}
	email := NormalizeEmail(f.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	return &User{
		Base:         newBase(),
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Email:        email,
		PasswordHash: f.PasswordHash,
		IsAdmin:      f.IsAdmin,
	}, nil
}

// Apply validates every field present in p and only then assigns them.
func (u *User) Apply(p UserPatch) error {
	if p.FirstName != nil {
		if err := ValidateName("first_name", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := ValidateName("last_name", *p.LastName); err != nil {
			return err
		}
	}
	var email string
	if p.Email != nil {
		email = NormalizeEmail(*p.Email)
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}

	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	u.Touch()

	return nil
}

func (u *User) AddPlace(placeID string) {
	u.PlaceIDs = appendUnique(u.PlaceIDs, placeID)
}

func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "email":
		return u.Email, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "is_admin":
		return u.IsAdmin, true
	}
	return nil, false
}

func (u *User) Clone() *User {
	c := *u
	c.PlaceIDs = slices.Clone(u.PlaceIDs)
	return &c
}
