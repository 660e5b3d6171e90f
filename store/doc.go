// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the snapshot persistence backends.

The poll manager defines the port (poll.SnapshotStore); this package
implements it three ways, selected at composition time by STORE_BACKEND:

  - MemoryStore: volatile in-process, for development and tests
  - RedisStore: one key in Redis, for deployments with an external KV store
  - SQLStore: one JSON row in sqlite or postgres

All three serialize the session the same way (encoding/json), so the
round-trip guarantees are identical across backends. Load returns
(nil, nil) when no snapshot exists and an error wrapping
poll.ErrCorruptSnapshot for payloads that no longer decode; the manager
falls back to a fresh session in both cases. Connection failures are
returned as plain errors and treated as fatal at boot.

	st, err := store.Open(ctx, cfg)
	...
	defer st.Close()
*/
package store
