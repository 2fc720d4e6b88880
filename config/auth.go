package config

import (
	"fmt"
	"strings"
)

// CredentialPolicy decides what happens to a stored token the backend has rejected.
type CredentialPolicy string

const (
	// CredentialPolicyKeep leaves a rejected token in the token store until the next login overwrites it.
	CredentialPolicyKeep CredentialPolicy = "keep"
	// CredentialPolicyPurge clears a rejected token and ends the local session.
	CredentialPolicyPurge CredentialPolicy = "purge"
)

// UnmarshalText implements encoding.TextUnmarshaler for CredentialPolicy.
func (p *CredentialPolicy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "keep", "purge":
		*p = CredentialPolicy(v)
		return nil
	default:
		return fmt.Errorf("invalid CredentialPolicy: %q (valid options: keep, purge)", v)
	}
}

// SessionConfig groups session lifecycle configuration.
type SessionConfig struct {
	// CredentialPolicy applies when hydration or a profile refresh finds the token rejected.
	// Network failures never purge the token.
	CredentialPolicy CredentialPolicy `env:"SESSION_CREDENTIAL_POLICY" envDefault:"keep"`
}
