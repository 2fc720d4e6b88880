package session

import domainauth "github.com/target/frontdesk-console/internal/domain/auth"

// Decision is what a protected view should do with the current session.
type Decision int

const (
	// DecisionPlaceholder renders a neutral placeholder while hydration runs.
	DecisionPlaceholder Decision = iota
	// DecisionRender renders the protected content.
	DecisionRender
	// DecisionRedirect sends the operator to the login surface.
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionPlaceholder:
		return "placeholder"
	case DecisionRender:
		return "render"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Guard decides render, placeholder, or redirect from the session alone.
func Guard(s domainauth.Session) Decision {
	if s.IsHydrating() {
		return DecisionPlaceholder
	}
	if s.IsAuthenticated() {
		return DecisionRender
	}
	return DecisionRedirect
}
