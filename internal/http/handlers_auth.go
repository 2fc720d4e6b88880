package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/service"
)

// SessionService is the part of the session coordinator the console drives.
type SessionService interface {
	Reader() ports.SessionReader
	State() domainauth.State
	Login(ctx context.Context, username, password string) service.LoginResult
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
}

// AccountService covers the account flows that never touch the session.
type AccountService interface {
	Register(ctx context.Context, req model.SignUpRequest) error
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc      SessionService
	Accounts AccountService
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login signs the operator in.
// POST /auth/login {"username","password"}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Svc.Login(r.Context(), req.Username, req.Password)
	if !res.Success {
		WriteJSON(w, loginFailureStatus(res.Err), res)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func loginFailureStatus(err error) int {
	code := apperrors.GetCode(err)
	if code == "" {
		return http.StatusInternalServerError
	}
	return statusForCode(code)
}

// Logout ends the session locally and, best effort, at the backend. It always succeeds.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if !RequireJSON(w, r) {
		return
	}
	h.Svc.Logout(r.Context())
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type statusResponse struct {
	State          domainauth.State        `json:"state"`
	Phase          domainauth.LoadingPhase `json:"phase"`
	Authenticated  bool                    `json:"authenticated"`
	User           *domainauth.Identity    `json:"user,omitempty"`
	TokenExpiresAt *time.Time              `json:"token_expires_at,omitempty"`
}

func (h *AuthHandlers) status() statusResponse {
	s := h.Svc.Reader().Snapshot()
	resp := statusResponse{
		State:         h.Svc.State(),
		Phase:         s.Phase,
		Authenticated: s.IsAuthenticated(),
	}
	if resp.Authenticated {
		resp.User = s.Identity
		if !s.TokenExpiresAt.IsZero() {
			exp := s.TokenExpiresAt
			resp.TokenExpiresAt = &exp
		}
	}
	return resp
}

// Status reports the session without requiring one. The token itself is never echoed.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, h.status())
}

// Refresh reloads the signed-in identity from the backend.
// POST /auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if !RequireJSON(w, r) {
		return
	}
	if err := h.Svc.Refresh(r.Context()); err != nil {
		h.logger().InfoContext(r.Context(), "profile refresh failed", "error", err)
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.status())
}

// Register creates an account. The caller stays signed out.
// POST /auth/signup.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Accounts.Register(r.Context(), req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// ForgotPassword asks the backend to send a reset link.
// POST /auth/forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Accounts.ForgotPassword(r.Context(), req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]bool{"success": true})
}

// ResetPassword sets a new password from a reset token.
// POST /auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Accounts.ResetPassword(r.Context(), req); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
