package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/frontdesk-console/config"
	redisadapter "github.com/target/frontdesk-console/internal/adapters/redis"
	"github.com/target/frontdesk-console/internal/adapters/tokenstore"
	"github.com/target/frontdesk-console/internal/ports"
)

// TokenStoreDeps contains configuration for the credential store.
type TokenStoreDeps struct {
	TokenStore config.TokenStoreConfig
	Redis      config.RedisConfig
	Logger     *slog.Logger
}

// BuildTokenStore creates the credential store for the configured backend.
// The returned closer releases any connection the store opened and is never nil.
//
//nolint:ireturn // the backend is chosen at runtime.
func BuildTokenStore(ctx context.Context, deps TokenStoreDeps) (ports.TokenStore, func() error, error) {
	noop := func() error { return nil }

	switch deps.TokenStore.Backend {
	case config.TokenStoreRedis:
		client, err := ConnectRedis(ctx, RedisDeps{Config: deps.Redis, Logger: deps.Logger})
		if err != nil {
			return nil, noop, fmt.Errorf("token store: %w", err)
		}
		store := redisadapter.NewTokenStoreWithOptions(client, redisadapter.TokenStoreOptions{
			Prefix:    deps.TokenStore.KeyPrefix,
			OpTimeout: deps.TokenStore.OpTimeout,
		})
		return store, client.Close, nil

	case config.TokenStoreFile, "":
		store, err := tokenstore.NewFileStore(deps.TokenStore.FilePath)
		if err != nil {
			return nil, noop, fmt.Errorf("token store: %w", err)
		}
		if deps.Logger != nil {
			deps.Logger.DebugContext(ctx, "using file token store", "path", store.Path())
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("token store: unsupported backend %q", deps.TokenStore.Backend)
	}
}
