// AngelaMos | 2026
// auth_test.go

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/auth"
	"github.com/carterperez-dev/hbnb/internal/config"
	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: make(map[string]time.Duration)}
}

func (m *memoryRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

func jwtConfig(t *testing.T) config.JWTConfig {
	t.Helper()
	dir := t.TempDir()
	return config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "keys", "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "keys", "public.pem"),
		GenerateKeys:      true,
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "hbnb",
		Audience:          "hbnb-api",
	}
}

func newJWT(t *testing.T, cfg config.JWTConfig) *auth.JWTManager {
	t.Helper()
	m, err := auth.NewJWTManager(cfg)
	require.NoError(t, err)
	return m
}

type fixture struct {
	svc         *auth.Service
	facade      *facade.Facade
	revocations *memoryRevocations
	userID      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := facade.NewInMemory(logger, nil)

	u, err := f.CreateUser(context.Background(), facade.UserInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "hunter22",
	})
	require.NoError(t, err)

	revocations := newMemoryRevocations()
	return &fixture{
		svc:         auth.NewService(f, newJWT(t, jwtConfig(t)), revocations, logger),
		facade:      f,
		revocations: revocations,
		userID:      u.ID,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := newJWT(t, jwtConfig(t))

	issued, err := m.CreateAccessToken(auth.AccessTokenClaims{UserID: "u1", IsAdmin: true})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), issued.ExpiresAt, 5*time.Second)

	claims, err := m.VerifyAccessToken(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, issued.ID, claims.TokenID)
	assert.NotEmpty(t, m.GetKeyID())
}

func TestJWTRejectsForeignKey(t *testing.T) {
	issuer := newJWT(t, jwtConfig(t))
	verifier := newJWT(t, jwtConfig(t))

	issued, err := issuer.CreateAccessToken(auth.AccessTokenClaims{UserID: "u1"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = verifier.VerifyAccessToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWTRejectsWrongAudience(t *testing.T) {
	cfg := jwtConfig(t)
	issuer := newJWT(t, cfg)

	other := cfg
	other.GenerateKeys = false
	other.Audience = "someone-else"
	verifier := newJWT(t, other)

	issued, err := issuer.CreateAccessToken(auth.AccessTokenClaims{UserID: "u1"})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), issued.Token)
	assert.Error(t, err)
}

func TestJWTExpiredToken(t *testing.T) {
	cfg := jwtConfig(t)
	cfg.AccessTokenExpire = -time.Hour
	m := newJWT(t, cfg)

	issued, err := m.CreateAccessToken(auth.AccessTokenClaims{UserID: "u1"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	assert.Error(t, err)
}

func TestJWKSHandler(t *testing.T) {
	m := newJWT(t, jwtConfig(t))

	rec := httptest.NewRecorder()
	m.GetJWKSHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, m.GetKeyID(), body.Keys[0]["kid"])
	assert.NotContains(t, body.Keys[0], "d")
}

func TestServiceLogin(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	resp, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "JOHN@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Positive(t, resp.ExpiresIn)

	claims, err := fx.svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, fx.userID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	_, err = fx.svc.Login(ctx, auth.LoginRequest{Email: "john@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, facade.ErrInvalidCredentials)

	_, err = fx.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, facade.ErrInvalidCredentials)
}

func TestServiceLogoutRevokes(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	resp, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "john@example.com", Password: "hunter22"})
	require.NoError(t, err)

	claims, err := fx.svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Logout(ctx, claims))
	assert.Contains(t, fx.revocations.revoked, claims.TokenID)

	_, err = fx.svc.VerifyAccessToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestServiceRevocationFailsOpen(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	resp, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "john@example.com", Password: "hunter22"})
	require.NoError(t, err)

	fx.revocations.err = errors.New("connection refused")

	claims, err := fx.svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, fx.userID, claims.UserID)
}

func TestServiceLogoutSkipsExpired(t *testing.T) {
	fx := newFixture(t)

	err := fx.svc.Logout(context.Background(), &middleware.AccessTokenClaims{
		UserID:    fx.userID,
		TokenID:   "old",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.Empty(t, fx.revocations.revoked)
}

func newAuthRouter(fx *fixture) http.Handler {
	r := chi.NewRouter()
	auth.NewHandler(fx.svc).RegisterRoutes(r, middleware.Authenticator(fx.svc), nil)
	return r
}

func doJSON(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandlerLoginFlow(t *testing.T) {
	fx := newFixture(t)
	h := newAuthRouter(fx)

	rec := doJSON(h, http.MethodPost, "/auth/login", "", `{"email":"john@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &login))
	require.NotEmpty(t, login.AccessToken)

	rec = doJSON(h, http.MethodGet, "/auth/protected", login.AccessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msg auth.MessageResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &msg))
	assert.Equal(t, "Hello, user "+fx.userID, msg.Message)

	rec = doJSON(h, http.MethodGet, "/auth/me", login.AccessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &me))
	assert.Equal(t, "john@example.com", me["email"])
	assert.NotContains(t, me, "password")

	rec = doJSON(h, http.MethodPost, "/auth/logout", login.AccessToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(h, http.MethodGet, "/auth/me", login.AccessToken, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", decode(t, rec).Error.Code)
}

func TestHandlerLoginErrors(t *testing.T) {
	fx := newFixture(t)
	h := newAuthRouter(fx)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed body", `{"email":`, http.StatusBadRequest},
		{"missing password", `{"email":"john@example.com"}`, http.StatusBadRequest},
		{"wrong password", `{"email":"john@example.com","password":"nope"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(h, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decode(t, rec).Success)
		})
	}

	rec := doJSON(h, http.MethodGet, "/auth/protected", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
