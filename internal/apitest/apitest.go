// AngelaMos | 2026
// apitest.go

// Package apitest holds helpers for exercising HTTP handlers in tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/middleware"
)

const (
	UserHeader  = "X-Test-User"
	AdminHeader = "X-Test-Admin"
)

// Authenticator trusts the caller named in UserHeader. Requests without
// it are rejected the way the real authenticator rejects a missing token.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(UserHeader)
		if id == "" {
			core.JSONError(w, core.UnauthorizedError("missing authorization token"))
			return
		}

		claims := &middleware.AccessTokenClaims{
			UserID:  id,
			IsAdmin: r.Header.Get(AdminHeader) == "true",
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
	})
}

type Caller struct {
	ID      string
	IsAdmin bool
}

var Anonymous = Caller{}

func Do(
	t *testing.T,
	h http.Handler,
	as Caller,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if as.ID != "" {
		req.Header.Set(UserHeader, as.ID)
	}
	if as.IsAdmin {
		req.Header.Set(AdminHeader, "true")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// Data decodes the response payload into out and returns the envelope.
func Data(t *testing.T, rec *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	env := Decode(t, rec)
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

// Failure asserts an error envelope with the given status and returns it.
func Failure(
	t *testing.T,
	rec *httptest.ResponseRecorder,
	status int,
	code string,
) Envelope {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	env := Decode(t, rec)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	return env
}
