// AngelaMos | 2026
// users.go

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

type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

func (f *Facade) CreateUser(
	ctx context.Context,
	in UserInput,
) (_ *domain.User, err error) {
	ctx, done := f.begin(ctx, "CreateUser")
	defer done(&err)

	user, err := domain.NewUser(domain.UserFields{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsAdmin:   in.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateEmailAddress(user.Email); err != nil {
		return nil, err
	}

	if in.Password == "" {
		return nil, core.NewValidationError("password", "is required")
	}

	if err := f.ensureEmailAvailable(ctx, user.Email, ""); err != nil {
		return nil, err
	}

	hash, err := f.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := f.users.Add(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.Reason(core.ErrConflict, "email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	f.logger.InfoContext(ctx, "user created",
		"user_id", user.ID,
		"is_admin", user.IsAdmin,
	)

	return user, nil
}

// ensureEmailAvailable fails with a conflict when email belongs to a user
// other than exceptID.
func (f *Facade) ensureEmailAvailable(
	ctx context.Context,
	email, exceptID string,
) error {
	existing, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check email: %w", err)
	}

	if existing.ID != exceptID {
		return core.Reason(core.ErrConflict, "email already registered")
	}

	return nil
}

func (f *Facade) UpdateUser(
	ctx context.Context,
	actor Actor,
	targetID string,
	in UserUpdate,
) (_ *domain.User, err error) {
	ctx, done := f.begin(ctx, "UpdateUser", attribute.String("user.id", targetID))
	defer done(&err)

	if !actor.IsAdmin {
		if !actor.owns(targetID) {
			return nil, f.deny(ctx, "UpdateUser", actor, "you can only update your own profile")
		}
		if in.Email != nil || in.Password != nil {
			return nil, f.deny(ctx, "UpdateUser", actor, "you cannot modify email or password")
		}
		if in.IsAdmin != nil {
			return nil, f.deny(ctx, "UpdateUser", actor, "only admins can change admin status")
		}
	}

	user, err := f.users.Get(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	patch := domain.UserPatch{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsAdmin:   in.IsAdmin,
	}

	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if err := domain.ValidateEmailAddress(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if err := f.ensureEmailAvailable(ctx, email, user.ID); err != nil {
				return nil, err
			}
		}
		patch.Email = &email
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, core.NewValidationError("password", "is required")
		}
		hash, err := f.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	user, err = repository.Mutate(ctx, f.users, targetID, func(u *domain.User) error {
		return u.Apply(patch)
	})
	if err != nil {
		if _, ok := core.AsValidationError(err); ok {
			return nil, err
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.Reason(core.ErrConflict, "email already registered")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	f.logger.InfoContext(ctx, "user updated",
		"user_id", user.ID,
		"actor_id", actor.ID,
		"credentials_changed", patch.ChangesCredentials(),
	)

	return user, nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (f *Facade) GetUserByEmail(
	ctx context.Context,
	email string,
) (*domain.User, error) {
	user, err := f.users.GetByAttribute(ctx, "email", domain.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (f *Facade) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := f.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (f *Facade) Authenticate(
	ctx context.Context,
	email, password string,
) (_ *domain.User, err error) {
	ctx, done := f.begin(ctx, "Authenticate")
	defer done(&err)

	user, err := f.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing with the found path
			_, _ = f.hasher.Verify(password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := f.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	f.upgradeHash(ctx, user, password)

	return user, nil
}

type rehasher interface {
	NeedsRehash(encoded string) bool
}

// upgradeHash re-hashes a verified password stored with outdated
// parameters. Failures are logged and otherwise ignored.
func (f *Facade) upgradeHash(ctx context.Context, user *domain.User, password string) {
	r, ok := f.hasher.(rehasher)
	if !ok || !r.NeedsRehash(user.PasswordHash) {
		return
	}

	hash, err := f.hasher.Hash(password)
	if err != nil {
		f.logger.WarnContext(ctx, "password rehash failed", "user_id", user.ID, "error", err)
		return
	}

	if _, err := repository.Mutate(ctx, f.users, user.ID, func(u *domain.User) error {
		return u.Apply(domain.UserPatch{PasswordHash: &hash})
	}); err != nil {
		f.logger.WarnContext(ctx, "store rehashed password", "user_id", user.ID, "error", err)
		return
	}

	f.logger.InfoContext(ctx, "password hash upgraded", "user_id", user.ID)
}

// EnsureAdmin creates the bootstrap administrator unless a user with the
// same email already exists.
func (f *Facade) EnsureAdmin(
	ctx context.Context,
	in UserInput,
) (*domain.User, bool, error) {
	existing, err := f.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	in.IsAdmin = true
	user, err := f.CreateUser(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
