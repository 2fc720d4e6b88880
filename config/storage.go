package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TokenStoreBackend selects where the bearer token is persisted.
type TokenStoreBackend string

const (
	// TokenStoreFile keeps the token in a file on this device.
	TokenStoreFile TokenStoreBackend = "file"
	// TokenStoreRedis keeps the token in Redis, for consoles without a durable filesystem.
	TokenStoreRedis TokenStoreBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreBackend.
func (b *TokenStoreBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis":
		*b = TokenStoreBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreBackend: %q (valid options: file, redis)", v)
	}
}

// TokenStoreConfig controls durable token persistence.
type TokenStoreConfig struct {
	Backend TokenStoreBackend `env:"TOKEN_STORE_BACKEND" envDefault:"file"`

	// FilePath is the credentials file for the file backend.
	// Defaults to <user config dir>/frontdesk/credentials.json.
	FilePath string `env:"TOKEN_STORE_FILE"`

	// KeyPrefix namespaces the token and legacy user keys in Redis.
	KeyPrefix string `env:"TOKEN_STORE_KEY_PREFIX" envDefault:"frontdesk:"`

	// OpTimeout bounds each Redis call made by the token store.
	OpTimeout time.Duration `env:"TOKEN_STORE_OP_TIMEOUT" envDefault:"2s"`
}

// Sanitize resolves the default credentials path and clamps timeouts.
func (t *TokenStoreConfig) Sanitize() {
	t.FilePath = strings.TrimSpace(t.FilePath)
	if t.FilePath == "" {
		t.FilePath = defaultCredentialsPath()
	}
	if t.OpTimeout <= 0 {
		t.OpTimeout = 2 * time.Second
	}
	if t.KeyPrefix == "" {
		t.KeyPrefix = "frontdesk:"
	}
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "frontdesk", "credentials.json")
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}
