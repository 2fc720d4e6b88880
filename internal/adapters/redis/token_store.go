// Package redis provides Redis-based adapters for the frontdesk console.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix    = "frontdesk:"
	defaultOpTimeout = 2 * time.Second
)

// TokenStore keeps the bearer token in Redis for consoles without durable local disk.
// Keys are <prefix>token and the legacy <prefix>user, which is only ever deleted.
type TokenStore struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
}

// TokenStoreOptions configures key naming and per-call timeouts.
type TokenStoreOptions struct {
	Prefix    string
	OpTimeout time.Duration
}

// NewTokenStore creates a Redis-backed token store with the default prefix.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithOptions(client, TokenStoreOptions{})
}

// NewTokenStoreWithOptions creates a Redis token store with a custom prefix and timeout.
func NewTokenStoreWithOptions(client redis.UniversalClient, opts TokenStoreOptions) *TokenStore {
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}
	return &TokenStore{
		client:    client,
		prefix:    opts.Prefix,
		opTimeout: opts.OpTimeout,
	}
}

func (s *TokenStore) tokenKey() string { return s.prefix + "token" }
func (s *TokenStore) userKey() string  { return s.prefix + "user" }

// Read returns the stored token or "" when none is stored.
func (s *TokenStore) Read(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return token, nil
}

// Write persists token without expiry; the backend decides when it stops being valid.
func (s *TokenStore) Write(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.tokenKey(), token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Clear removes the token and the legacy user entry.
func (s *TokenStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}
