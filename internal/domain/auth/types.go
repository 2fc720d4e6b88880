package auth

// Package auth contains domain-level types for the operator session and its identity.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// Role is the single role classifier the backend assigns to an account.
// The backend owns the vocabulary; the console only relies on RoleGuest.
type Role string

// RoleGuest is substituted whenever the backend omits or empties the role.
const RoleGuest Role = "Guest"

// NormalizeRole applies the guest fallback to a raw role value.
func NormalizeRole(raw string) Role {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoleGuest
	}
	return Role(trimmed)
}

// PermissionSet is an unordered set of permission codes.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from codes, ignoring blanks and duplicates.
func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether code is in the set.
func (p PermissionSet) Has(code string) bool {
	_, ok := p[code]
	return ok
}

// Codes returns the codes in sorted order for stable output.
func (p PermissionSet) Codes() []string {
	out := make([]string, 0, len(p))
	for c := range p {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON renders the set as a sorted array.
func (p PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Codes())
}

// Identity is the normalized authenticated principal.
// It is replaced wholesale on every successful fetch and never mutated in place.
type Identity struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	IsSuperAdmin bool
	Permissions  PermissionSet
	Status       string
	CreatedAt    string
	Phone        string
	AvatarURL    string
}

// DisplayName is always derived from the name parts.
func (i Identity) DisplayName() string {
	return i.FirstName + " " + i.LastName
}

// HasPermission reports whether the identity may use the permission code.
// Super admins bypass the set.
func (i Identity) HasPermission(code string) bool {
	return i.IsSuperAdmin || i.Permissions.Has(code)
}

type identityJSON struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Name         string        `json:"name"`
	Role         Role          `json:"role"`
	IsSuperAdmin bool          `json:"is_super_admin"`
	Permissions  PermissionSet `json:"permissions"`
	Status       string        `json:"status,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
}

// MarshalJSON renders the identity with the derived name.
func (i Identity) MarshalJSON() ([]byte, error) {
	perms := i.Permissions
	if perms == nil {
		perms = PermissionSet{}
	}
	return json.Marshal(identityJSON{
		ID:           i.ID,
		Username:     i.Username,
		Email:        i.Email,
		FirstName:    i.FirstName,
		LastName:     i.LastName,
		Name:         i.DisplayName(),
		Role:         i.Role,
		IsSuperAdmin: i.IsSuperAdmin,
		Permissions:  perms,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		Phone:        i.Phone,
		AvatarURL:    i.AvatarURL,
	})
}

// LoadingPhase tells consumers whether startup hydration has finished.
type LoadingPhase string

const (
	PhaseHydrating LoadingPhase = "hydrating"
	PhaseIdle      LoadingPhase = "idle"
)

// State is the coordinator's position in the session state machine.
type State string

const (
	StateHydrating      State = "hydrating"
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Session is the process-local session value held by the session store.
// Only Token is ever written to durable storage.
type Session struct {
	Token    string
	Identity *Identity
	Phase    LoadingPhase

	// TokenExpiresAt is informational; zero when the token carries no readable expiry.
	TokenExpiresAt time.Time
}

// IsAuthenticated requires both a token and an identity.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.Identity != nil
}

// IsHydrating reports whether startup hydration is still running.
func (s Session) IsHydrating() bool {
	return s.Phase == PhaseHydrating
}
