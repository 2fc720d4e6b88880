package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/target/frontdesk-console/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "validation keeps field",
			err:     apperrors.ValidationField("phoneNumber", "phoneNumber is required"),
			status:  http.StatusBadRequest,
			code:    "validation",
			message: "phoneNumber is required",
		},
		{
			name:    "invalid credentials",
			err:     apperrors.InvalidCredentials("Bad credentials"),
			status:  http.StatusUnauthorized,
			code:    "invalid_credentials",
			message: "Bad credentials",
		},
		{
			name:    "auth expired",
			err:     apperrors.AuthExpired("Session expired"),
			status:  http.StatusUnauthorized,
			code:    "auth_expired",
			message: "Session expired",
		},
		{
			name:    "not found through wrapping",
			err:     fmt.Errorf("get visitor: %w", apperrors.NotFound("Visitor not found")),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "Visitor not found",
		},
		{
			name:    "network hides cause",
			err:     apperrors.Wrap(errors.New("dial tcp: refused"), apperrors.ErrCodeNetwork, "Unable to reach the server"),
			status:  http.StatusBadGateway,
			code:    "network",
			message: "Unable to reach the server",
		},
		{
			name:    "upstream",
			err:     apperrors.Upstream("Internal error", http.StatusInternalServerError),
			status:  http.StatusBadGateway,
			code:    "upstream",
			message: "Internal error",
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "internal",
			message: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, rec.Body.String(), "dial tcp")
		})
	}

	rec := httptest.NewRecorder()
	WriteAppError(rec, apperrors.ValidationField("phoneNumber", "phoneNumber is required"))
	assert.Contains(t, rec.Body.String(), `"field":"phoneNumber"`)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("accepts json with charset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		var dst payload
		assert.True(t, DecodeJSON(httptest.NewRecorder(), req, &dst))
		assert.Equal(t, "x", dst.Name)
	})

	t.Run("rejects other content types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		var dst payload
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/", `{"name":"x","extra":1}`)
		rec := httptest.NewRecorder()
		var dst payload
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_json")
	})
}
