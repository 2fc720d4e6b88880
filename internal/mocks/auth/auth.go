// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore  = (*MemoryTokenStore)(nil)
	_ ports.AuthGateway = (*FakeGateway)(nil)
)

// MemoryTokenStore is an in-memory token store that records calls and can inject failures.
type MemoryTokenStore struct {
	mu sync.Mutex

	token string

	ReadErr  error
	WriteErr error
	ClearErr error

	Reads  int
	Writes int
	Clears int
}

// NewMemoryTokenStore returns a store pre-loaded with token ("" for none).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Read(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.token, nil
}

func (m *MemoryTokenStore) Write(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	return nil
}

// Token returns the stored token without counting as a read.
func (m *MemoryTokenStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// FakeGateway is a scriptable AuthGateway. Unset funcs fall back to deterministic defaults
// built around DefaultIdentity.
type FakeGateway struct {
	ExchangeFunc  func(ctx context.Context, creds ports.Credentials) (ports.SignInResult, error)
	FetchFunc     func(ctx context.Context, token string) (domainauth.Identity, error)
	TerminateFunc func(ctx context.Context, token string) error

	DefaultIdentity domainauth.Identity
	DefaultToken    string

	mu             sync.Mutex
	exchangeCalls  int
	fetchCalls     int
	terminateCalls int
	fetchedTokens  []string
	endedTokens    []string
}

// NewFakeGateway creates a gateway that signs everyone in as a test admin.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		DefaultToken: "fake-token",
		DefaultIdentity: domainauth.Identity{
			ID:          "user-1",
			Username:    "admin",
			Email:       "admin@school.example",
			FirstName:   "Ada",
			LastName:    "Admin",
			Role:        "Admin",
			Permissions: domainauth.NewPermissionSet("visitors.read"),
		},
	}
}

func (g *FakeGateway) ExchangeCredentials(ctx context.Context, creds ports.Credentials) (ports.SignInResult, error) {
	g.mu.Lock()
	g.exchangeCalls++
	g.mu.Unlock()

	if g.ExchangeFunc != nil {
		return g.ExchangeFunc(ctx, creds)
	}
	return ports.SignInResult{Token: g.DefaultToken, Identity: g.DefaultIdentity}, nil
}

func (g *FakeGateway) FetchCurrentIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	g.mu.Lock()
	g.fetchCalls++
	g.fetchedTokens = append(g.fetchedTokens, token)
	g.mu.Unlock()

	if g.FetchFunc != nil {
		return g.FetchFunc(ctx, token)
	}
	return g.DefaultIdentity, nil
}

func (g *FakeGateway) TerminateSession(ctx context.Context, token string) error {
	g.mu.Lock()
	g.terminateCalls++
	g.endedTokens = append(g.endedTokens, token)
	g.mu.Unlock()

	if g.TerminateFunc != nil {
		return g.TerminateFunc(ctx, token)
	}
	return nil
}

// ExchangeCalls returns how many sign-in exchanges were attempted.
func (g *FakeGateway) ExchangeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exchangeCalls
}

// FetchCalls returns how many identity fetches were attempted.
func (g *FakeGateway) FetchCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCalls
}

// TerminateCalls returns how many sign-outs were attempted.
func (g *FakeGateway) TerminateCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminateCalls
}

// FetchedTokens returns the tokens passed to FetchCurrentIdentity, in call order.
func (g *FakeGateway) FetchedTokens() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.fetchedTokens...)
}

// TerminatedTokens returns the tokens passed to TerminateSession, in call order.
func (g *FakeGateway) TerminatedTokens() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.endedTokens...)
}
