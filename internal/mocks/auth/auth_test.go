package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/ports"
)

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := NewMemoryTokenStore("")
	ctx := context.Background()

	token, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Write(ctx, "t1"))
	assert.Equal(t, "t1", store.Token())

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.Token())
	assert.Equal(t, 1, store.Reads)
	assert.Equal(t, 1, store.Writes)
	assert.Equal(t, 1, store.Clears)
}

func TestMemoryTokenStore_InjectedErrors(t *testing.T) {
	boom := errors.New("disk full")
	store := NewMemoryTokenStore("t1")
	store.WriteErr = boom
	store.ClearErr = boom

	require.ErrorIs(t, store.Write(context.Background(), "t2"), boom)
	require.ErrorIs(t, store.Clear(context.Background()), boom)
	assert.Equal(t, "t1", store.Token())
}

func TestFakeGateway_Defaults(t *testing.T) {
	gw := NewFakeGateway()
	ctx := context.Background()

	res, err := gw.ExchangeCredentials(ctx, ports.Credentials{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.Equal(t, "fake-token", res.Token)
	assert.Equal(t, "Ada Admin", res.Identity.DisplayName())

	id, err := gw.FetchCurrentIdentity(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.ID)

	require.NoError(t, gw.TerminateSession(ctx, "t1"))

	assert.Equal(t, 1, gw.ExchangeCalls())
	assert.Equal(t, 1, gw.FetchCalls())
	assert.Equal(t, 1, gw.TerminateCalls())
	assert.Equal(t, []string{"t1"}, gw.FetchedTokens())
	assert.Equal(t, []string{"t1"}, gw.TerminatedTokens())
}

func TestFakeGateway_CustomFuncs(t *testing.T) {
	boom := errors.New("offline")
	gw := &FakeGateway{
		FetchFunc: func(_ context.Context, _ string) (domainauth.Identity, error) {
			return domainauth.Identity{}, boom
		},
	}

	_, err := gw.FetchCurrentIdentity(context.Background(), "t1")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, gw.FetchCalls())
}
