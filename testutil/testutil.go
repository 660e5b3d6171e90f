// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/poll"
	"github.com/danielhkuo/classpulse/store"
)

// RecordingBroadcaster captures every published projection so tests can
// assert on publish counts and payloads.
type RecordingBroadcaster struct {
	mu     sync.Mutex
	states []models.PublicState
}

func (b *RecordingBroadcaster) Broadcast(state models.PublicState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states = append(b.states, state)
}

func (b *RecordingBroadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.states)
}

func (b *RecordingBroadcaster) Last() models.PublicState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.states) == 0 {
		return models.PublicState{}
	}
	return b.states[len(b.states)-1]
}

// ManualScheduler implements poll.Scheduler without wall-clock timers.
// Tests trigger expiry explicitly with Fire.
type ManualScheduler struct {
	mu       sync.Mutex
	pending  func()
	duration time.Duration
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
	s.duration = d
}

func (s *ManualScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Fire runs the pending callback the way time.AfterFunc would, clearing
// it first so a second Fire is the fired-twice case, not a re-run.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Armed reports whether a callback is scheduled, and for how long.
func (s *ManualScheduler) Armed() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, s.pending != nil
}

// NewTestManager builds a manager on a memory store with a recording
// broadcaster and a manual scheduler.
func NewTestManager(t *testing.T) (*poll.Manager, *RecordingBroadcaster, *ManualScheduler) {
	t.Helper()
	bcast := &RecordingBroadcaster{}
	sched := &ManualScheduler{}
	mgr := poll.NewManager(store.NewMemoryStore(), bcast, sched)
	return mgr, bcast, sched
}

// JoinTestTeacher registers a fresh teacher and returns the token
func JoinTestTeacher(t *testing.T, mgr *poll.Manager) string {
	t.Helper()
	token, err := auth.GenerateParticipantToken()
	if err != nil {
		t.Fatalf("Failed to generate teacher token: %v", err)
	}
	if err := mgr.RegisterTeacher(token); err != nil {
		t.Fatalf("Failed to register teacher: %v", err)
	}
	return token
}

// JoinTestStudent registers a student and returns the token and roster ID
func JoinTestStudent(t *testing.T, mgr *poll.Manager, name string) (token, id string) {
	t.Helper()
	token, err := auth.GenerateParticipantToken()
	if err != nil {
		t.Fatalf("Failed to generate student token: %v", err)
	}
	id, err = auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate student id: %v", err)
	}
	if err := mgr.RegisterStudent(token, id, name); err != nil {
		t.Fatalf("Failed to register student %q: %v", name, err)
	}
	return token, id
}

// AskTestQuestion starts a question and returns its ID
func AskTestQuestion(t *testing.T, mgr *poll.Manager, teacherToken, text string, options []string, timeLimitSec int) string {
	t.Helper()
	qid, err := mgr.AskQuestion(teacherToken, text, options, timeLimitSec)
	if err != nil {
		t.Fatalf("Failed to ask question: %v", err)
	}
	return qid
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
