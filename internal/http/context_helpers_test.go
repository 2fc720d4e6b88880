package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
)

func TestGetSessionFromContext(t *testing.T) {
	_, ok := GetSessionFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, IdentityFromContext(context.Background()))

	sess := authenticatedSession("Admin")
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)
	assert.Equal(t, "u1", IdentityFromContext(ctx).ID)
}

func TestIsGuestUser(t *testing.T) {
	assert.True(t, IsGuestUser(context.Background()))

	anonymous := SetSessionInContext(context.Background(), domainauth.Session{Phase: domainauth.PhaseIdle})
	assert.True(t, IsGuestUser(anonymous))

	guest := SetSessionInContext(context.Background(), authenticatedSession(domainauth.RoleGuest))
	assert.True(t, IsGuestUser(guest))

	staff := SetSessionInContext(context.Background(), authenticatedSession("Receptionist"))
	assert.False(t, IsGuestUser(staff))
}
