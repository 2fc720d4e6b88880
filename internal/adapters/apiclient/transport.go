package apiclient

import (
	"net/http"

	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
	"golang.org/x/oauth2"
)

// sessionTokenSource hands out whatever token the session store currently holds.
// It never refreshes; an anonymous session yields an Unauthenticated error.
type sessionTokenSource struct {
	reader ports.SessionReader
}

// SessionTokenSource adapts the session store to an oauth2.TokenSource.
func SessionTokenSource(reader ports.SessionReader) oauth2.TokenSource {
	return &sessionTokenSource{reader: reader}
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	sess := s.reader.Snapshot()
	if !sess.IsAuthenticated() {
		return nil, apperrors.Unauthenticated("Not signed in")
	}
	return &oauth2.Token{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Expiry:      sess.TokenExpiresAt,
	}, nil
}

// AuthorizedHTTPClient returns a copy of base that attaches the session's bearer token.
func AuthorizedHTTPClient(base *http.Client, src oauth2.TokenSource) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	clone := *base
	clone.Transport = &oauth2.Transport{Source: src, Base: next}
	return &clone
}
