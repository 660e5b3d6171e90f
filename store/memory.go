// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/danielhkuo/classpulse/poll"
)

// MemoryStore is the volatile in-process backend. State dies with the
// process; useful for development and tests.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save keeps the encoded form rather than the pointer so memory behaves
// exactly like the external backends, round-trip included.
func (s *MemoryStore) Save(_ context.Context, snap *poll.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*poll.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	var snap poll.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", poll.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
