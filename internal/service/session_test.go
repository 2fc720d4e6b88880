package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/frontdesk-console/config"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/mocks"
	authmocks "github.com/target/frontdesk-console/internal/mocks/auth"
	"github.com/target/frontdesk-console/internal/observability/metrics"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/session"
	"github.com/target/frontdesk-console/internal/testutil"
	"go.uber.org/mock/gomock"
)

type coordinatorFixture struct {
	coord   *SessionCoordinator
	store   *session.Store
	gateway *authmocks.FakeGateway
	tokens  *authmocks.MemoryTokenStore
	metrics *metrics.SessionMetrics

	mu      sync.Mutex
	updates []domainauth.Session
}

func newFixture(t *testing.T, storedToken string, policy config.CredentialPolicy) *coordinatorFixture {
	t.Helper()
	f := &coordinatorFixture{
		store:   session.NewStore(),
		gateway: authmocks.NewFakeGateway(),
		tokens:  authmocks.NewMemoryTokenStore(storedToken),
		metrics: metrics.NewSessionMetrics(prometheus.NewRegistry()),
	}
	coord, err := NewSessionCoordinator(SessionCoordinatorOptions{
		Gateway: f.gateway,
		Tokens:  f.tokens,
		Store:   f.store,
		Policy:  policy,
		Metrics: f.metrics,
		Now:     testutil.FixedTimeFunc(testutil.TestTime()),
	})
	require.NoError(t, err)
	f.coord = coord

	unsubscribe := f.store.Subscribe(func(s domainauth.Session) {
		f.mu.Lock()
		f.updates = append(f.updates, s)
		f.mu.Unlock()
	})
	t.Cleanup(unsubscribe)
	return f
}

func (f *coordinatorFixture) notifications() []domainauth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainauth.Session(nil), f.updates...)
}

// hydrated returns a fixture that finished hydration in the given state.
func hydrated(t *testing.T, storedToken string, policy config.CredentialPolicy) *coordinatorFixture {
	t.Helper()
	f := newFixture(t, storedToken, policy)
	require.NoError(t, f.coord.Hydrate(context.Background()))
	f.mu.Lock()
	f.updates = nil
	f.mu.Unlock()
	return f
}

func devUser() domainauth.Identity {
	return domainauth.Identity{
		ID:          "u1",
		Username:    "dev",
		FirstName:   "Dev",
		LastName:    "User",
		Role:        domainauth.RoleGuest,
		Permissions: domainauth.NewPermissionSet(),
	}
}

func TestNewSessionCoordinator_RequiresDependencies(t *testing.T) {
	_, err := NewSessionCoordinator(SessionCoordinatorOptions{})
	require.Error(t, err)

	_, err = NewSessionCoordinator(SessionCoordinatorOptions{Gateway: authmocks.NewFakeGateway()})
	require.Error(t, err)

	_, err = NewSessionCoordinator(SessionCoordinatorOptions{
		Gateway: authmocks.NewFakeGateway(),
		Tokens:  authmocks.NewMemoryTokenStore(""),
	})
	require.Error(t, err)
}

func TestHydrate_NoTokenSkipsNetwork(t *testing.T) {
	f := newFixture(t, "", config.CredentialPolicyKeep)
	assert.True(t, f.store.Snapshot().IsHydrating())

	require.NoError(t, f.coord.Hydrate(context.Background()))

	snap := f.store.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Equal(t, domainauth.PhaseIdle, snap.Phase)
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
	assert.Equal(t, 0, f.gateway.FetchCalls())
}

func TestHydrate_RestoresSessionInOneWrite(t *testing.T) {
	f := newFixture(t, "T", config.CredentialPolicyKeep)
	f.gateway.DefaultIdentity = devUser()

	require.NoError(t, f.coord.Hydrate(context.Background()))

	updates := f.notifications()
	require.Len(t, updates, 1)
	assert.Equal(t, "T", updates[0].Token)
	require.NotNil(t, updates[0].Identity)
	assert.Equal(t, "Dev User", updates[0].Identity.DisplayName())
	assert.Equal(t, domainauth.PhaseIdle, updates[0].Phase)

	assert.Equal(t, domainauth.StateAuthenticated, f.coord.State())
	assert.Equal(t, []string{"T"}, f.gateway.FetchedTokens())
	assert.Equal(t, session.DecisionRender, session.Guard(f.store.Snapshot()))
}

func TestHydrate_RunsOnce(t *testing.T) {
	f := newFixture(t, "T", config.CredentialPolicyKeep)
	ctx := context.Background()

	require.NoError(t, f.coord.Hydrate(ctx))
	err := f.coord.Hydrate(ctx)
	require.ErrorIs(t, err, ErrAlreadyHydrated)
	assert.Equal(t, 1, f.gateway.FetchCalls())
	assert.Equal(t, 1, f.tokens.Reads)
}

func TestHydrate_FailureEndsAnonymous(t *testing.T) {
	tests := []struct {
		name      string
		policy    config.CredentialPolicy
		err       error
		wantToken string
	}{
		{"keep policy, rejected token", config.CredentialPolicyKeep, apperrors.AuthExpired("Session expired"), "T"},
		{"keep policy, network failure", config.CredentialPolicyKeep, apperrors.Network("Unable to load profile"), "T"},
		{"purge policy, rejected token", config.CredentialPolicyPurge, apperrors.AuthExpired("Session expired"), ""},
		{"purge policy, network failure", config.CredentialPolicyPurge, apperrors.Network("Unable to load profile"), "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "T", tt.policy)
			f.gateway.FetchFunc = func(context.Context, string) (domainauth.Identity, error) {
				return domainauth.Identity{}, tt.err
			}

			require.NoError(t, f.coord.Hydrate(context.Background()))

			snap := f.store.Snapshot()
			assert.Empty(t, snap.Token)
			assert.Nil(t, snap.Identity)
			assert.Equal(t, domainauth.PhaseIdle, snap.Phase)
			assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
			assert.Equal(t, tt.wantToken, f.tokens.Token())
			assert.Equal(t, session.DecisionRedirect, session.Guard(snap))
		})
	}
}

func TestHydrate_TokenReadErrorIsAnonymous(t *testing.T) {
	f := newFixture(t, "T", config.CredentialPolicyKeep)
	f.tokens.ReadErr = errors.New("permission denied")

	require.NoError(t, f.coord.Hydrate(context.Background()))
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
	assert.Equal(t, 0, f.gateway.FetchCalls())
}

func TestHydrate_KeepPolicyNeverClearsWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenStore(ctrl)
	gateway := mocks.NewMockAuthGateway(ctrl)

	tokens.EXPECT().Read(gomock.Any()).Return("T", nil)
	gateway.EXPECT().
		FetchCurrentIdentity(gomock.Any(), "T").
		Return(domainauth.Identity{}, apperrors.AuthExpired("Session expired"))

	coord, err := NewSessionCoordinator(SessionCoordinatorOptions{
		Gateway: gateway,
		Tokens:  tokens,
		Store:   session.NewStore(),
	})
	require.NoError(t, err)

	require.NoError(t, coord.Hydrate(context.Background()))
	assert.Equal(t, domainauth.StateAnonymous, coord.State())
}

func TestLogin_RejectedWhileHydrating(t *testing.T) {
	f := newFixture(t, "", config.CredentialPolicyKeep)

	res := f.coord.Login(context.Background(), "dev", "pw")
	assert.False(t, res.Success)
	require.ErrorIs(t, res.Err, ErrTransactionInProgress)
	assert.Equal(t, 0, f.gateway.ExchangeCalls())
}

func TestLogin_EmptyInputFailsWithoutNetwork(t *testing.T) {
	for _, tc := range []struct{ user, pass string }{{"", "pw"}, {"dev", ""}, {"   ", "pw"}} {
		f := hydrated(t, "", config.CredentialPolicyKeep)

		res := f.coord.Login(context.Background(), tc.user, tc.pass)
		assert.False(t, res.Success)
		assert.True(t, apperrors.IsValidation(res.Err))
		assert.Equal(t, "Username and password are required", res.Error)
		assert.Equal(t, 0, f.gateway.ExchangeCalls())
		assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
	}
}

func TestLogin_BadCredentialsLeavesEverythingUntouched(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)
	f.gateway.ExchangeFunc = func(context.Context, ports.Credentials) (ports.SignInResult, error) {
		e := apperrors.InvalidCredentials("Bad credentials")
		e.Status = 401
		return ports.SignInResult{}, e
	}

	res := f.coord.Login(context.Background(), "a", "wrong")

	assert.False(t, res.Success)
	assert.Equal(t, "Bad credentials", res.Error)
	assert.True(t, apperrors.IsInvalidCredentials(res.Err))
	assert.Empty(t, f.notifications())
	assert.Equal(t, 0, f.tokens.Writes)
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
	assert.False(t, f.store.Snapshot().IsAuthenticated())
}

func TestLogin_SuccessPersistsThenPublishes(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token := signedTestToken(t, jwt.MapClaims{"exp": exp.Unix()})
	f.gateway.ExchangeFunc = func(_ context.Context, creds ports.Credentials) (ports.SignInResult, error) {
		assert.Equal(t, "dev", creds.Username)
		return ports.SignInResult{Token: token, Identity: devUser()}, nil
	}
	f.store.Subscribe(func(s domainauth.Session) {
		// The token is durable before any subscriber sees the new session.
		assert.Equal(t, s.Token, f.tokens.Token())
	})

	res := f.coord.Login(context.Background(), " dev ", "pw")

	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.User)
	assert.Equal(t, token, res.User.Token)
	assert.Equal(t, token, f.tokens.Token())

	updates := f.notifications()
	require.Len(t, updates, 1)
	assert.True(t, updates[0].IsAuthenticated())
	assert.True(t, updates[0].TokenExpiresAt.Equal(exp))
	assert.Equal(t, domainauth.StateAuthenticated, f.coord.State())

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var body struct {
		Success bool `json:"success"`
		User    struct {
			Name  string `json:"name"`
			Role  string `json:"role"`
			Token string `json:"token"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Dev User", body.User.Name)
	assert.Equal(t, "Guest", body.User.Role)
	assert.Equal(t, token, body.User.Token)
	assert.NotContains(t, string(raw), `"error"`)
}

func TestLogin_TokenWriteFailureIsLoginFailure(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)
	f.tokens.WriteErr = errors.New("read-only filesystem")

	res := f.coord.Login(context.Background(), "dev", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, "Unable to save the session on this device", res.Error)
	assert.Empty(t, f.notifications())
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
}

func TestLogin_FailureRestoresAuthenticatedState(t *testing.T) {
	f := hydrated(t, "T", config.CredentialPolicyKeep)
	before := f.store.Snapshot()
	f.gateway.ExchangeFunc = func(context.Context, ports.Credentials) (ports.SignInResult, error) {
		return ports.SignInResult{}, apperrors.Network("Unable to reach the server")
	}

	res := f.coord.Login(context.Background(), "other", "pw")

	assert.False(t, res.Success)
	assert.Equal(t, "Unable to reach the server", res.Error)
	assert.Equal(t, domainauth.StateAuthenticated, f.coord.State())
	assert.Equal(t, before, f.store.Snapshot())
	assert.Equal(t, "T", f.tokens.Token())
}

func TestLogin_SecondLoginWhileInFlightIsRejected(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)
	entered := make(chan struct{})
	release := make(chan struct{})
	f.gateway.ExchangeFunc = func(context.Context, ports.Credentials) (ports.SignInResult, error) {
		close(entered)
		<-release
		return ports.SignInResult{Token: "T1", Identity: devUser()}, nil
	}

	done := make(chan LoginResult, 1)
	go func() { done <- f.coord.Login(context.Background(), "dev", "pw") }()
	<-entered

	assert.Equal(t, domainauth.StateAuthenticating, f.coord.State())
	second := f.coord.Login(context.Background(), "dev", "pw")
	require.ErrorIs(t, second.Err, ErrTransactionInProgress)

	close(release)
	first := <-done
	assert.True(t, first.Success)
	assert.Equal(t, 1, f.gateway.ExchangeCalls())
}

func TestLogout_DuringLoginWins(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)
	entered := make(chan struct{})
	release := make(chan struct{})
	f.gateway.ExchangeFunc = func(context.Context, ports.Credentials) (ports.SignInResult, error) {
		close(entered)
		<-release
		return ports.SignInResult{Token: "late", Identity: devUser()}, nil
	}

	done := make(chan LoginResult, 1)
	go func() { done <- f.coord.Login(context.Background(), "dev", "pw") }()
	<-entered
	f.coord.Logout(context.Background())
	close(release)

	res := <-done
	assert.False(t, res.Success)
	require.ErrorIs(t, res.Err, ErrSessionSuperseded)
	assert.False(t, f.store.Snapshot().IsAuthenticated())
	assert.Empty(t, f.tokens.Token())
	assert.Equal(t, 0, f.tokens.Writes)
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
}

func TestLogout_ClearsLocallyBeforeNetwork(t *testing.T) {
	f := hydrated(t, "T", config.CredentialPolicyKeep)
	f.gateway.TerminateFunc = func(_ context.Context, token string) error {
		assert.Equal(t, "T", token)
		assert.False(t, f.store.Snapshot().IsAuthenticated())
		assert.Empty(t, f.tokens.Token())
		assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
		return apperrors.Network("Unable to reach the server")
	}

	f.coord.Logout(context.Background())

	assert.Equal(t, 1, f.gateway.TerminateCalls())
	assert.Equal(t, 1, f.tokens.Clears)
	updates := f.notifications()
	require.Len(t, updates, 1)
	assert.Equal(t, domainauth.Session{Phase: domainauth.PhaseIdle}, updates[0])
	assert.InDelta(t, 1, promtest.ToFloat64(
		f.metrics.Transitions.WithLabelValues(metrics.OpLogout, metrics.ResultError, "network")), 0)
}

func TestLogout_AnonymousSkipsNetwork(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)

	f.coord.Logout(context.Background())

	assert.Equal(t, 0, f.gateway.TerminateCalls())
	assert.Equal(t, 1, f.tokens.Clears)
}

func TestLogout_AfterFailedHydrationTerminatesStoredToken(t *testing.T) {
	f := newFixture(t, "stale", config.CredentialPolicyKeep)
	f.gateway.FetchFunc = func(context.Context, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.Network("Unable to reach the server")
	}
	_ = f.coord.Hydrate(context.Background())
	require.False(t, f.store.Snapshot().IsAuthenticated())
	require.Equal(t, "stale", f.tokens.Token())

	f.coord.Logout(context.Background())

	assert.Equal(t, 1, f.gateway.TerminateCalls())
	assert.Equal(t, []string{"stale"}, f.gateway.TerminatedTokens())
	assert.Empty(t, f.tokens.Token())
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
}

func TestLogout_DuringHydrationDiscardsRestore(t *testing.T) {
	f := newFixture(t, "T", config.CredentialPolicyKeep)
	entered := make(chan struct{})
	release := make(chan struct{})
	f.gateway.FetchFunc = func(context.Context, string) (domainauth.Identity, error) {
		close(entered)
		<-release
		return devUser(), nil
	}

	done := make(chan error, 1)
	go func() { done <- f.coord.Hydrate(context.Background()) }()
	<-entered
	f.coord.Logout(context.Background())
	close(release)
	require.NoError(t, <-done)

	snap := f.store.Snapshot()
	assert.False(t, snap.IsAuthenticated())
	assert.Equal(t, domainauth.PhaseIdle, snap.Phase)
	assert.Equal(t, domainauth.StateAnonymous, f.coord.State())
	assert.Empty(t, f.tokens.Token())
}

func TestRefresh_ReplacesIdentity(t *testing.T) {
	f := hydrated(t, "T", config.CredentialPolicyKeep)
	updated := devUser()
	updated.Role = "Receptionist"
	updated.Permissions = domainauth.NewPermissionSet("visitors.write")
	f.gateway.FetchFunc = func(context.Context, string) (domainauth.Identity, error) {
		return updated, nil
	}

	require.NoError(t, f.coord.Refresh(context.Background()))

	snap := f.store.Snapshot()
	assert.Equal(t, "T", snap.Token)
	assert.Equal(t, domainauth.Role("Receptionist"), snap.Identity.Role)
	assert.False(t, snap.Identity.HasPermission("visitors.read"))
	assert.True(t, snap.Identity.HasPermission("visitors.write"))
}

func TestRefresh_RequiresAuthenticated(t *testing.T) {
	f := hydrated(t, "", config.CredentialPolicyKeep)

	err := f.coord.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, 0, f.gateway.FetchCalls())
}

func TestRefresh_RejectedTokenFollowsPolicy(t *testing.T) {
	expired := func(context.Context, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.AuthExpired("Session expired")
	}

	keep := hydrated(t, "T", config.CredentialPolicyKeep)
	before := keep.store.Snapshot()
	keep.gateway.FetchFunc = expired
	err := keep.coord.Refresh(context.Background())
	assert.True(t, apperrors.IsAuthExpired(err))
	assert.Equal(t, before, keep.store.Snapshot())
	assert.Equal(t, "T", keep.tokens.Token())

	purge := hydrated(t, "T", config.CredentialPolicyPurge)
	purge.gateway.FetchFunc = expired
	err = purge.coord.Refresh(context.Background())
	assert.True(t, apperrors.IsAuthExpired(err))
	assert.False(t, purge.store.Snapshot().IsAuthenticated())
	assert.Empty(t, purge.tokens.Token())
	assert.Equal(t, domainauth.StateAnonymous, purge.coord.State())
}
