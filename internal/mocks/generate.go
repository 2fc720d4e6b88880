// Package mocks provides gomock implementations of the session ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	gw := mocks.NewMockAuthGateway(ctrl)
//	gw.EXPECT().FetchCurrentIdentity(gomock.Any(), "t1").Return(identity, nil)
package mocks

// MockTokenStore: Read, Write, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/target/frontdesk-console/internal/ports TokenStore

// MockAuthGateway: ExchangeCredentials, FetchCurrentIdentity, TerminateSession
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_gateway_mock.go github.com/target/frontdesk-console/internal/ports AuthGateway
