package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/adapters/redis"
	"github.com/aretw0/tracetm/pkg/adapters/sqlite"
	"github.com/aretw0/tracetm/pkg/ports"
)

// StoreOptions selects where runs are persisted.
type StoreOptions struct {
	Backend    string
	RedisURL   string
	SQLitePath string
}

// OpenStore builds the configured RunStore. The returned store is nil for StoreNone.
// The close function is always safe to call.
func OpenStore(ctx context.Context, opts StoreOptions) (ports.RunStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", StoreNone:
		return nil, noop, nil
	case StoreMemory:
		return memory.NewStore(), noop, nil
	case StoreRedis:
		url := opts.RedisURL
		if url == "" {
			url = os.Getenv(EnvRedisURL)
		}
		if url == "" {
			return nil, noop, fmt.Errorf("redis store requires --redis or %s", EnvRedisURL)
		}
		store, err := redis.New(url)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, store.Close, nil
	case StoreSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = ".tracetm/runs.db"
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q (want none, memory, redis or sqlite)", opts.Backend)
	}
}
