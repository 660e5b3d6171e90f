// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/poll"
)

// Store is a poll.SnapshotStore that owns external resources.
type Store interface {
	poll.SnapshotStore
	Close() error
}

// Open selects the snapshot backend at composition time. The state machine
// itself never branches on deployment mode.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return OpenRedisStore(ctx, cfg.RedisURL, cfg.SnapshotKey)
	case "sql":
		return OpenSQLStore(ctx, cfg.DatabaseType, cfg.DatabaseURL, cfg.SnapshotKey)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
