package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	apperrors "github.com/target/frontdesk-console/internal/errors"
)

const maxJSONBody = 1 << 20

// RequireJSON rejects requests that are not application/json with 415.
// Cross-site HTML forms cannot send that content type, so state-changing JSON routes call it
// even when they have no body to decode.
func RequireJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnsupportedMediaType,
			ErrCode: "unsupported_media_type",
			Err:     errors.New("content type must be application/json"),
		})
		return false
	}
	return true
}

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !RequireJSON(w, r) {
		return false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// errorBody is the JSON shape of an AppError response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// statusForCode maps application error codes onto console responses.
// Failures that originate at the backend surface as 502 so they are not mistaken for console faults.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidCredentials, apperrors.ErrCodeAuthExpired, apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeUpstream, apperrors.ErrCodeMissingToken:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders err with the operator-facing message only. Causes stay in the logs.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	body := errorBody{
		Error:   string(code),
		Message: apperrors.UserMessage(err, "Something went wrong"),
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body.Field = appErr.Field
	}
	WriteJSON(w, statusForCode(code), body)
}
