// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/domain"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const blacklistNamespace = "blacklist"

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocations struct {
	store *core.Redis
}

func NewRedisRevocations(store *core.Redis) RevocationStore {
	return &redisRevocations{store: store}
}

func (r *redisRevocations) Revoke(
	ctx context.Context,
	jti string,
	ttl time.Duration,
) error {
	key := r.store.Key(blacklistNamespace, jti)
	if err := r.store.Client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (r *redisRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.store.Client.Exists(ctx, r.store.Key(blacklistNamespace, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists > 0, nil
}

type Service struct {
	facade      *facade.Facade
	jwt         *JWTManager
	revocations RevocationStore
	logger      *slog.Logger
}

// NewService wires login and token checks. A nil revocations store
// disables logout revocation.
func NewService(
	f *facade.Facade,
	jwt *JWTManager,
	revocations RevocationStore,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		facade:      f,
		jwt:         jwt,
		revocations: revocations,
		logger:      logger.With("component", "auth"),
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.facade.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, facade.ErrInvalidCredentials) {
			s.logger.WarnContext(ctx, "login failed")
		}
		return nil, err
	}

	issued, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return &LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
		ExpiresAt:   issued.ExpiresAt,
	}, nil
}

func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if s.revocations == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "token revoked",
		"user_id", claims.UserID,
		"jti", claims.TokenID,
	)

	return nil
}

// VerifyAccessToken checks the signature and then the revocation list.
// When the list cannot be reached the token is accepted and the failure
// logged.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.revocations == nil {
		return claims, nil
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.WarnContext(ctx, "revocation check failed, accepting token",
			"error", err,
		)
		return claims, nil
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.facade.GetUser(ctx, userID)
}
