package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
)

// TokenStore persists the single bearer credential across process restarts.
// Read returns "" when no token is stored. Contents are opaque to the store.
type TokenStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	// Clear removes the token and the legacy cached-user entry.
	Clear(ctx context.Context) error
}

// Credentials is the username/password pair exchanged at sign-in.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SignInResult pairs a fresh token with the identity it was issued for.
type SignInResult struct {
	Token    string
	Identity domainauth.Identity
}

// AuthGateway is the network boundary for session operations. It holds no session state.
// Every Identity it returns is already normalized.
type AuthGateway interface {
	// ExchangeCredentials signs in and returns a non-empty token with the identity.
	ExchangeCredentials(ctx context.Context, creds Credentials) (SignInResult, error)

	// FetchCurrentIdentity loads the identity the token belongs to.
	FetchCurrentIdentity(ctx context.Context, token string) (domainauth.Identity, error)

	// TerminateSession asks the backend to end the session; callers treat it as best effort.
	TerminateSession(ctx context.Context, token string) error
}

// SessionReader is the read side of the session store handed to consumers.
type SessionReader interface {
	Snapshot() domainauth.Session
	Subscribe(fn func(domainauth.Session)) (unsubscribe func())
}
