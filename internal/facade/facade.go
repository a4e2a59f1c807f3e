// AngelaMos | 2026
// facade.go

// Package facade is the single entry point between transport handlers and
// storage. It validates composite inputs, resolves references between
// entities and enforces ownership and admin rules.
package facade

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/repository"
)

// TracerName scopes the spans opened around every facade operation.
const TracerName = "github.com/carterperez-dev/hbnb/internal/facade"

var ErrInvalidCredentials = errors.New("invalid credentials")

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) (bool, error)
}

// Actor is the authenticated caller, verified upstream.
type Actor struct {
	ID      string
	IsAdmin bool
}

func (a Actor) owns(ownerID string) bool {
	return a.ID != "" && a.ID == ownerID
}

type Deps struct {
	Users     repository.Repository[*domain.User]
	Places    repository.Repository[*domain.Place]
	Amenities repository.Repository[*domain.Amenity]
	Reviews   repository.Repository[*domain.Review]
	Hasher    PasswordHasher
	Logger    *slog.Logger
	Metrics   *core.Metrics
	Tracer    trace.Tracer
}

type Facade struct {
	users     repository.Repository[*domain.User]
	places    repository.Repository[*domain.Place]
	amenities repository.Repository[*domain.Amenity]
	reviews   repository.Repository[*domain.Review]
	hasher    PasswordHasher
	logger    *slog.Logger
	metrics   *core.Metrics
	tracer    trace.Tracer
}

func New(deps Deps) *Facade {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hasher := deps.Hasher
	if hasher == nil {
		hasher = core.Argon2Hasher{}
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return &Facade{
		users:     deps.Users,
		places:    deps.Places,
		amenities: deps.Amenities,
		reviews:   deps.Reviews,
		hasher:    hasher,
		logger:    logger.With("component", "facade"),
		metrics:   deps.Metrics,
		tracer:    tracer,
	}
}

// MemoryDeps returns Deps backed by fresh in-memory stores; callers fill
// in the ambient fields.
func MemoryDeps() Deps {
	return Deps{
		Users:     repository.NewMemory[*domain.User]("user"),
		Places:    repository.NewMemory[*domain.Place]("place"),
		Amenities: repository.NewMemory[*domain.Amenity]("amenity"),
		Reviews:   repository.NewMemory[*domain.Review]("review"),
	}
}

// NewInMemory wires a facade over fresh in-memory stores.
func NewInMemory(logger *slog.Logger, metrics *core.Metrics) *Facade {
	deps := MemoryDeps()
	deps.Logger = logger
	deps.Metrics = metrics
	return New(deps)
}

// begin opens a span for op; the returned func closes it and records the
// outcome of *errp.
func (f *Facade) begin(
	ctx context.Context,
	op string,
	attrs ...attribute.KeyValue,
) (context.Context, func(errp *error)) {
	ctx, span := f.tracer.Start(ctx, "facade."+op, trace.WithAttributes(attrs...))
	start := time.Now()

	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, core.Outcome(err))
		}
		span.End()
		f.metrics.ObserveOperation(op, err, time.Since(start))
	}
}

func (f *Facade) deny(ctx context.Context, op string, actor Actor, reason string) error {
	f.logger.WarnContext(ctx, "authorization denied",
		"operation", op,
		"actor_id", actor.ID,
		"reason", reason,
	)
	return core.Reason(core.ErrForbidden, "%s", reason)
}

type EntityCounts struct {
	Users     int `json:"users"`
	Places    int `json:"places"`
	Amenities int `json:"amenities"`
	Reviews   int `json:"reviews"`
}

func (f *Facade) Counts(ctx context.Context) (EntityCounts, error) {
	var counts EntityCounts
	var err error

	if counts.Users, err = f.users.Count(ctx); err != nil {
		return counts, err
	}
	if counts.Places, err = f.places.Count(ctx); err != nil {
		return counts, err
	}
	if counts.Amenities, err = f.amenities.Count(ctx); err != nil {
		return counts, err
	}
	if counts.Reviews, err = f.reviews.Count(ctx); err != nil {
		return counts, err
	}

	return counts, nil
}
