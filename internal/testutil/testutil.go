// Package testutil holds shared helpers for package tests.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTestRedisURI points at the last logical DB of a local Redis so a developer's data in DB 0 is untouched.
const DefaultTestRedisURI = "redis://localhost:6379/15"

// FixedTimeFunc returns a function that always returns the same time.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// redisRequired reports whether a missing Redis should fail the run instead of skipping.
func redisRequired() bool {
	switch strings.ToLower(os.Getenv("TEST_REQUIRE_REDIS")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// RedisTestOptions resolves TEST_REDIS_URI, falling back to DefaultTestRedisURI.
func RedisTestOptions() (*redis.Options, error) {
	uri := os.Getenv("TEST_REDIS_URI")
	if uri == "" {
		uri = DefaultTestRedisURI
	}
	return redis.ParseURL(uri)
}

// SetupTestRedis returns a client on an emptied test DB and empties it again on cleanup.
// The test is skipped when Redis cannot be reached unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	opts, err := RedisTestOptions()
	if err != nil {
		t.Fatalf("invalid TEST_REDIS_URI: %v", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if redisRequired() {
			t.Fatalf("redis not available at %s: %v", opts.Addr, err)
		}
		t.Skipf("redis not available at %s: %v", opts.Addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test redis db %d: %v", opts.DB, err)
	}

	t.Cleanup(func() {
		cctx, ccancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer ccancel()
		if err := client.FlushDB(cctx).Err(); err != nil {
			t.Logf("warning: flush test redis db %d: %v", opts.DB, err)
		}
		if err := client.Close(); err != nil {
			t.Logf("warning: close test redis client: %v", err)
		}
	})
	return client
}

// StringPtr returns a pointer to the given string value.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given bool value.
func BoolPtr(b bool) *bool {
	return &b
}
