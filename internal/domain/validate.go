// AngelaMos | 2026
// validate.go

package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/carterperez-dev/hbnb/internal/core"
)

const (
	MaxNameLength  = 50
	MaxTitleLength = 100
	MinRating      = 1
	MaxRating      = 5
	MinLatitude    = -90.0
	MaxLatitude    = 90.0
	MinLongitude   = -180.0
	MaxLongitude   = 180.0
)

var emailAddressPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

func invalid(field, format string, args ...any) error {
	return core.NewValidationError(field, fmt.Sprintf(format, args...))
}

// ValidateName checks the bounded, non-empty name fields of users and
// amenities.
func ValidateName(field, value string) error {
	if value == "" || utf8.RuneCountInString(value) > MaxNameLength {
		return invalid(field, "must be between 1 and %d characters", MaxNameLength)
	}
	return nil
}

func ValidateEmail(value string) error {
	if value == "" || !strings.Contains(value, "@") {
		return invalid("email", "must contain @")
	}
	return nil
}

// ValidateEmailAddress applies the stricter registration rule: a local
// part, an "@" and a dotted domain.
func ValidateEmailAddress(value string) error {
	if err := ValidateEmail(value); err != nil {
		return err
	}
	if !emailAddressPattern.MatchString(value) {
		return invalid("email", "must include a domain")
	}
	return nil
}

func ValidateTitle(value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("title", "cannot be empty")
	}
	if utf8.RuneCountInString(value) > MaxTitleLength {
		return invalid("title", "must be %d characters max", MaxTitleLength)
	}
	return nil
}

func ValidatePrice(n Number) (float64, error) {
	f, ok := n.Float64()
	if !ok {
		return 0, invalid("price", "must be a valid number")
	}
	if f < 0 {
		return 0, invalid("price", "cannot be negative")
	}
	return f, nil
}

func ValidateLatitude(n Number) (float64, error) {
	f, ok := n.Float64()
	if !ok {
		return 0, invalid("latitude", "must be a valid number")
	}
	if f < MinLatitude || f > MaxLatitude {
		return 0, invalid("latitude", "must be between %.1f and %.1f", MinLatitude, MaxLatitude)
	}
	return f, nil
}

func ValidateLongitude(n Number) (float64, error) {
	f, ok := n.Float64()
	if !ok {
		return 0, invalid("longitude", "must be a valid number")
	}
	if f < MinLongitude || f > MaxLongitude {
		return 0, invalid("longitude", "must be between %.1f and %.1f", MinLongitude, MaxLongitude)
	}
	return f, nil
}

func ValidateText(value string) error {
	if value == "" {
		return invalid("text", "cannot be empty")
	}
	return nil
}

func ValidateRating(n Number) (int, error) {
	r, ok := n.Integer()
	if !ok || r < MinRating || r > MaxRating {
		return 0, invalid("rating", "must be an integer between %d and %d", MinRating, MaxRating)
	}
	return r, nil
}

func requireID(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}
