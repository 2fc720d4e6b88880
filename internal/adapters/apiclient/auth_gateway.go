package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
)

const (
	loginFailedMsg    = "Login failed"
	missingTokenMsg   = "No token received"
	sessionExpiredMsg = "Session expired"
	profileFailedMsg  = "Unable to load profile"
)

var _ ports.AuthGateway = (*AuthGateway)(nil)

// AuthGatewayConfig configures the auth endpoints.
type AuthGatewayConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// AuthGateway is the stateless network boundary for sign-in, profile and sign-out.
// The token is always passed in explicitly; the gateway never reads the session.
type AuthGateway struct {
	api *requester
}

// NewAuthGateway builds a gateway for cfg.BaseURL.
func NewAuthGateway(cfg AuthGatewayConfig) (*AuthGateway, error) {
	api, err := newRequester(cfg.BaseURL, cfg.HTTPClient, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &AuthGateway{api: api}, nil
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string      `json:"accessToken"`
	User        backendUser `json:"user"`
}

// ExchangeCredentials posts the credentials to /auth/signin.
func (g *AuthGateway) ExchangeCredentials(ctx context.Context, creds ports.Credentials) (ports.SignInResult, error) {
	resp, err := g.api.send(ctx, request{
		method: http.MethodPost,
		path:   "/auth/signin",
		body:   signInRequest{Username: creds.Username, Password: creds.Password},
	})
	if err != nil {
		return ports.SignInResult{}, err
	}

	if !resp.ok() {
		msg := resp.message()
		if msg == "" {
			msg = loginFailedMsg
		}
		switch resp.status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
			http.StatusNotFound, http.StatusUnprocessableEntity:
			e := apperrors.InvalidCredentials(msg)
			e.Status = resp.status
			return ports.SignInResult{}, e
		default:
			return ports.SignInResult{}, apperrors.Upstream(msg, resp.status)
		}
	}

	var payload signInResponse
	if err := resp.decode(&payload); err != nil {
		return ports.SignInResult{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, loginFailedMsg)
	}
	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return ports.SignInResult{}, apperrors.MissingToken(missingTokenMsg)
	}

	return ports.SignInResult{Token: token, Identity: payload.User.toIdentity()}, nil
}

// FetchCurrentIdentity loads /auth/me for token.
// A rejected token is AuthExpired; every other failure is reported as a network error.
func (g *AuthGateway) FetchCurrentIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	resp, err := g.api.send(ctx, request{
		method: http.MethodGet,
		path:   "/auth/me",
		bearer: token,
	})
	if err != nil {
		if apperrors.IsNetwork(err) {
			return domainauth.Identity{}, err
		}
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, profileFailedMsg)
	}

	switch {
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		e := apperrors.AuthExpired(sessionExpiredMsg)
		e.Status = resp.status
		return domainauth.Identity{}, e
	case !resp.ok():
		e := apperrors.Network(profileFailedMsg)
		e.Status = resp.status
		return domainauth.Identity{}, e
	}

	var user backendUser
	if err := resp.decode(&user); err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeNetwork, profileFailedMsg)
	}
	return user.toIdentity(), nil
}

// TerminateSession posts to /auth/signout. Callers treat failures as best effort.
func (g *AuthGateway) TerminateSession(ctx context.Context, token string) error {
	return g.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/signout",
		bearer: token,
	}, nil, "Sign out failed")
}

// Register creates an account via /auth/signup. It does not sign in.
func (g *AuthGateway) Register(ctx context.Context, req model.SignUpRequest) error {
	return g.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/signup",
		body:   req,
	}, nil, "Registration failed")
}

// ForgotPassword asks the backend to send a reset link to the account's email.
func (g *AuthGateway) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	return g.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   req,
	}, nil, "Password reset request failed")
}

// ResetPassword completes a reset with the emailed token.
func (g *AuthGateway) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	return g.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body:   req,
	}, nil, "Password reset failed")
}
