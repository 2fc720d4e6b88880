package httpx

import (
	"context"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries a copy of the given session.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session captured by RequireSession and whether one was set.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return s, ok
}

// IdentityFromContext returns the signed-in identity, or nil when the request carries no session.
func IdentityFromContext(ctx context.Context) *domainauth.Identity {
	s, ok := GetSessionFromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return nil
	}
	return s.Identity
}

// IsGuestUser reports whether the request is unauthenticated or the identity carries the guest role.
func IsGuestUser(ctx context.Context) bool {
	id := IdentityFromContext(ctx)
	return id == nil || id.Role == domainauth.RoleGuest
}
