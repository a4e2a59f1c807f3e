// AngelaMos | 2026
// response_test.go

package core_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/hbnb/internal/core"
)

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

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	core.OK(rec, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":"1"}`, string(env.Data))
	assert.Nil(t, env.Error)
}

func TestCreatedAndNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	core.Created(rec, []int{1})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	core.NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	core.WriteError(rec, core.Reason(core.ErrForbidden, "admin privileges required"), "amenity")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Equal(t, "admin privileges required", env.Error.Message)
}

func TestValidatorUsesJSONNames(t *testing.T) {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password,omitempty" validate:"required,max=4"`
	}

	err := core.NewValidator().Struct(request{Email: "nope", Password: "toolong"})
	require.Error(t, err)

	assert.Equal(t,
		"email must be a valid email; password must be at most 4 characters",
		core.FormatValidationError(err),
	)

	rec := httptest.NewRecorder()
	core.ValidationFailed(rec, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
}
