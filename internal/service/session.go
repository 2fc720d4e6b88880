package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/target/frontdesk-console/config"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/observability/metrics"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/session"
)

var (
	// ErrAlreadyHydrated is returned by every Hydrate call after the first.
	ErrAlreadyHydrated = errors.New("session already hydrated")

	// ErrTransactionInProgress rejects a login while hydration or another login is running.
	ErrTransactionInProgress = apperrors.Conflict("A sign-in is already in progress")

	// ErrSessionSuperseded reports a result discarded because a logout landed first.
	ErrSessionSuperseded = apperrors.Conflict("Signed out before the request completed")
)

const (
	loginFailedMsg     = "Login failed"
	missingCredsMsg    = "Username and password are required"
	saveSessionFailMsg = "Unable to save the session on this device"
)

// SessionCoordinatorOptions groups dependencies for SessionCoordinator.
type SessionCoordinatorOptions struct {
	Gateway ports.AuthGateway
	Tokens  ports.TokenStore
	Store   *session.Store
	Policy  config.CredentialPolicy
	Metrics *metrics.SessionMetrics
	Logger  *slog.Logger
	Now     func() time.Time
}

// SessionCoordinator is the only writer of the session store and the token store, and the
// only caller of the gateway's session operations.
//
// Transitions are serialized by mu. Commits that follow a network call are dropped when a
// logout (or a newer login) bumped epoch while the call was in flight. Store subscribers are
// notified while mu is held and must not call back into the coordinator.
type SessionCoordinator struct {
	gateway  ports.AuthGateway
	tokens   ports.TokenStore
	store    *session.Store
	policy   config.CredentialPolicy
	metrics  *metrics.SessionMetrics
	logger   *slog.Logger
	now      func() time.Time
	validate *validator.Validate

	hydrateStarted atomic.Bool

	mu    sync.Mutex
	state domainauth.State
	epoch uint64
}

// NewSessionCoordinator constructs a coordinator in the hydrating state.
func NewSessionCoordinator(opts SessionCoordinatorOptions) (*SessionCoordinator, error) {
	if opts.Gateway == nil {
		return nil, errors.New("auth gateway is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token store is required")
	}
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Policy == "" {
		opts.Policy = config.CredentialPolicyKeep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionCoordinator{
		gateway:  opts.Gateway,
		tokens:   opts.Tokens,
		store:    opts.Store,
		policy:   opts.Policy,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With("component", "session"),
		now:      opts.Now,
		validate: newValidator(),
		state:    domainauth.StateHydrating,
	}, nil
}

// Reader returns the read-only view of the session store for consumers.
func (c *SessionCoordinator) Reader() ports.SessionReader {
	return c.store
}

// State returns the current state machine position.
func (c *SessionCoordinator) State() domainauth.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *SessionCoordinator) emit(op, result string, start time.Time, err error) {
	c.metrics.EmitSession(metrics.SessionEvent{
		Operation: op,
		Result:    result,
		Duration:  c.now().Sub(start),
		Err:       err,
	})
}

func (c *SessionCoordinator) anonymous() domainauth.Session {
	return domainauth.Session{Phase: domainauth.PhaseIdle}
}

func (c *SessionCoordinator) authenticated(token string, identity domainauth.Identity) domainauth.Session {
	return domainauth.Session{
		Token:          token,
		Identity:       &identity,
		Phase:          domainauth.PhaseIdle,
		TokenExpiresAt: tokenExpiry(token),
	}
}

// Hydrate restores the session from the stored token. It runs at most once per coordinator.
// Failures are logged and end in the anonymous state; the phase always ends idle.
func (c *SessionCoordinator) Hydrate(ctx context.Context) error {
	if !c.hydrateStarted.CompareAndSwap(false, true) {
		return ErrAlreadyHydrated
	}
	start := c.now()

	c.mu.Lock()
	epoch := c.epoch
	c.mu.Unlock()

	token, err := c.tokens.Read(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "read stored token failed", "error", err)
		token = ""
	}

	if token == "" {
		c.commitHydration(epoch, c.anonymous(), domainauth.StateAnonymous)
		c.logger.DebugContext(ctx, "no stored token")
		c.emit(metrics.OpHydrate, metrics.ResultNoop, start, nil)
		return nil
	}

	identity, err := c.gateway.FetchCurrentIdentity(ctx, token)
	if err != nil {
		c.logger.WarnContext(ctx, "restore session failed", "error", err)
		c.mu.Lock()
		if c.epoch == epoch {
			if apperrors.IsAuthExpired(err) && c.policy == config.CredentialPolicyPurge {
				c.clearTokensLocked(ctx)
			}
			c.store.Set(c.anonymous())
			c.state = domainauth.StateAnonymous
		}
		c.mu.Unlock()
		c.emit(metrics.OpHydrate, metrics.ResultError, start, err)
		return nil
	}

	if !c.commitHydration(epoch, c.authenticated(token, identity), domainauth.StateAuthenticated) {
		c.logger.InfoContext(ctx, "restored session discarded after logout")
		c.emit(metrics.OpHydrate, metrics.ResultNoop, start, nil)
		return nil
	}
	c.logger.InfoContext(ctx, "session restored", "user_id", identity.ID, "role", identity.Role)
	c.emit(metrics.OpHydrate, metrics.ResultSuccess, start, nil)
	return nil
}

func (c *SessionCoordinator) commitHydration(epoch uint64, next domainauth.Session, state domainauth.State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.store.Set(next)
	c.state = state
	return true
}

// LoginResult is the outcome of Login. Failures carry a message safe to show the operator.
type LoginResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	User    *SignedInUser `json:"user,omitempty"`
	Err     error         `json:"-"`
}

// SignedInUser is the identity returned by a successful login together with its token.
type SignedInUser struct {
	domainauth.Identity
	Token string
}

// MarshalJSON renders the identity fields plus token.
func (u SignedInUser) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(u.Identity)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	token, err := json.Marshal(u.Token)
	if err != nil {
		return nil, err
	}
	fields["token"] = token
	return json.Marshal(fields)
}

func loginFailure(err error) LoginResult {
	return LoginResult{
		Error: apperrors.UserMessage(err, loginFailedMsg),
		Err:   err,
	}
}

// Login exchanges credentials for a session. On failure nothing is persisted and the previous
// state is restored.
func (c *SessionCoordinator) Login(ctx context.Context, username, password string) LoginResult {
	start := c.now()
	creds := ports.Credentials{Username: strings.TrimSpace(username), Password: password}

	c.mu.Lock()
	if c.state == domainauth.StateHydrating || c.state == domainauth.StateAuthenticating {
		c.mu.Unlock()
		c.emit(metrics.OpLogin, metrics.ResultRejected, start, nil)
		return loginFailure(ErrTransactionInProgress)
	}
	if err := validateRequest(c.validate, creds); err != nil {
		c.mu.Unlock()
		c.emit(metrics.OpLogin, metrics.ResultRejected, start, nil)
		return loginFailure(apperrors.Wrap(err, apperrors.ErrCodeValidation, missingCredsMsg))
	}
	prev := c.state
	c.state = domainauth.StateAuthenticating
	epoch := c.epoch
	c.mu.Unlock()

	res, err := c.gateway.ExchangeCredentials(ctx, creds)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		c.logger.InfoContext(ctx, "login result discarded after logout", "username", creds.Username)
		c.emit(metrics.OpLogin, metrics.ResultNoop, start, nil)
		return loginFailure(ErrSessionSuperseded)
	}
	if err != nil {
		c.state = prev
		c.logger.InfoContext(ctx, "login failed", "username", creds.Username, "error", err)
		c.emit(metrics.OpLogin, metrics.ResultError, start, err)
		return loginFailure(err)
	}
	if werr := c.tokens.Write(ctx, res.Token); werr != nil {
		c.state = prev
		err = apperrors.Wrap(werr, apperrors.ErrCodeInternal, saveSessionFailMsg)
		c.logger.ErrorContext(ctx, "persist token failed", "error", werr)
		c.emit(metrics.OpLogin, metrics.ResultError, start, err)
		return loginFailure(err)
	}

	c.epoch++
	c.store.Set(c.authenticated(res.Token, res.Identity))
	c.state = domainauth.StateAuthenticated

	c.logger.InfoContext(ctx, "login succeeded", "user_id", res.Identity.ID, "role", res.Identity.Role)
	c.emit(metrics.OpLogin, metrics.ResultSuccess, start, nil)
	return LoginResult{
		Success: true,
		User:    &SignedInUser{Identity: res.Identity, Token: res.Token},
	}
}

// Logout clears the local session before telling the backend. Backend failures are logged only.
func (c *SessionCoordinator) Logout(ctx context.Context) {
	start := c.now()

	c.mu.Lock()
	token := c.store.Snapshot().Token
	if token == "" {
		// A failed or pending hydration can leave a persisted token with no in-memory session.
		stored, err := c.tokens.Read(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "read stored token for sign-out failed", "error", err)
		}
		token = stored
	}
	c.epoch++
	c.store.Set(c.anonymous())
	c.clearTokensLocked(ctx)
	c.state = domainauth.StateAnonymous
	c.mu.Unlock()

	if token == "" {
		c.emit(metrics.OpLogout, metrics.ResultNoop, start, nil)
		return
	}
	if err := c.gateway.TerminateSession(ctx, token); err != nil {
		c.logger.WarnContext(ctx, "server sign-out failed, local session cleared anyway", "error", err)
		c.emit(metrics.OpLogout, metrics.ResultError, start, err)
		return
	}
	c.logger.InfoContext(ctx, "logged out")
	c.emit(metrics.OpLogout, metrics.ResultSuccess, start, nil)
}

// Refresh reloads the identity for the current token and replaces it wholesale.
// A rejected token ends the session only under the purge policy.
func (c *SessionCoordinator) Refresh(ctx context.Context) error {
	start := c.now()

	c.mu.Lock()
	if c.state != domainauth.StateAuthenticated {
		c.mu.Unlock()
		return apperrors.Unauthenticated("Not signed in")
	}
	current := c.store.Snapshot()
	epoch := c.epoch
	c.mu.Unlock()

	identity, err := c.gateway.FetchCurrentIdentity(ctx, current.Token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		c.emit(metrics.OpRefresh, metrics.ResultNoop, start, nil)
		return ErrSessionSuperseded
	}
	if err != nil {
		if apperrors.IsAuthExpired(err) && c.policy == config.CredentialPolicyPurge {
			c.epoch++
			c.store.Set(c.anonymous())
			c.clearTokensLocked(ctx)
			c.state = domainauth.StateAnonymous
			c.logger.InfoContext(ctx, "session ended: token rejected")
		}
		c.emit(metrics.OpRefresh, metrics.ResultError, start, err)
		return err
	}

	next := current
	next.Identity = &identity
	c.store.Set(next)
	c.emit(metrics.OpRefresh, metrics.ResultSuccess, start, nil)
	return nil
}

func (c *SessionCoordinator) clearTokensLocked(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "clear stored token failed", "error", err)
	}
}
