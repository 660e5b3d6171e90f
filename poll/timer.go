// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"sync"
	"time"
)

// Scheduler is the timer port: it holds at most one pending closure
// callback. Scheduling replaces any pending callback; Cancel of an
// already-fired or already-canceled timer is harmless.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
	Cancel()
}

// timerScheduler is the real implementation backed by time.AfterFunc.
type timerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler returns the wall-clock Scheduler used in production.
func NewScheduler() Scheduler {
	return &timerScheduler{}
}

func (s *timerScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, fn)
}

func (s *timerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
