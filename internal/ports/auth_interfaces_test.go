package ports_test

import (
	"testing"

	mocks "github.com/target/frontdesk-console/internal/mocks/auth"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/session"
)

// This test only verifies that our doubles conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.TokenStore = (*mocks.MemoryTokenStore)(nil)
	var _ ports.AuthGateway = (*mocks.FakeGateway)(nil)
	var _ ports.SessionReader = (*session.Store)(nil)
}
