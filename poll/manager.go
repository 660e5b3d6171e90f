// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/classpulse/models"
)

// Broadcaster publishes the public projection to every observer after a
// state-changing command. The manager does not know how state reaches a
// client; the WebSocket hub is one implementation.
type Broadcaster interface {
	Broadcast(state models.PublicState)
}

// SnapshotStore persists the session so it survives process restarts.
// Load returns (nil, nil) when no snapshot exists, and an error wrapping
// ErrCorruptSnapshot when the stored payload cannot be decoded.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

const persistTimeout = 5 * time.Second

// Manager is the poll state machine. Every command and every timer firing
// is applied as one atomic step under a single mutex, which is what lets
// the session invariants hold with plain conditionals.
type Manager struct {
	mu    sync.Mutex
	sess  *session
	store SnapshotStore
	bcast Broadcaster
	sched Scheduler
}

// NewManager wires the state machine to its ports. A nil scheduler gets
// the wall-clock implementation; tests pass a manual one.
func NewManager(store SnapshotStore, bcast Broadcaster, sched Scheduler) *Manager {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Manager{
		sess:  newSession(),
		store: store,
		bcast: bcast,
		sched: sched,
	}
}

// RegisterTeacher claims the teacher slot. Re-registering the same token
// succeeds; a different token while one is active fails with ErrConflict.
func (m *Manager) RegisterTeacher(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sess.registerTeacher(token); err != nil {
		return err
	}
	slog.Info("teacher joined")
	m.afterMutationLocked("join-teacher")
	return nil
}

// UnregisterTeacher clears the teacher slot on a token match. A late or
// duplicate disconnect is ignored, never an error.
func (m *Manager) UnregisterTeacher(token string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.unregisterTeacher(token) {
		return OutcomeIgnored
	}
	slog.Info("teacher left")
	m.afterMutationLocked("leave-teacher")
	return OutcomeApplied
}

// RegisterStudent adds a student under a caller-issued token and public
// roster ID. Fails with ErrConflict when the sanitized name is taken.
func (m *Manager) RegisterStudent(token, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.sess.registerStudent(token, id, name)
	if err != nil {
		return err
	}
	slog.Info("student joined", "student_id", rec.ID, "name", rec.Name, "count", len(m.sess.students))
	m.afterMutationLocked("join-student")
	return nil
}

// UnregisterStudent removes a student and frees the name. Ignored if absent.
func (m *Manager) UnregisterStudent(token string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.unregisterStudent(token) {
		return OutcomeIgnored
	}
	slog.Info("student left", "count", len(m.sess.students))
	m.afterMutationLocked("leave-student")
	return OutcomeApplied
}

// RemoveStudent is the teacher-initiated removal, targeted by the public
// roster ID from the projection.
func (m *Manager) RemoveStudent(teacherToken, targetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.isTeacher(teacherToken) {
		return ErrUnauthorized
	}
	token, ok := m.sess.tokenByStudentID(targetID)
	if !ok {
		return fmt.Errorf("%w: no student with id %q", ErrNotFound, targetID)
	}
	m.sess.unregisterStudent(token)
	slog.Info("student removed", "student_id", targetID, "count", len(m.sess.students))
	m.afterMutationLocked("remove-student")
	return nil
}

// Disconnect handles a dropped connection: the token is unregistered
// whichever role it held. Safe to call for observer tokens.
func (m *Manager) Disconnect(token string) {
	if token == "" {
		return
	}
	if m.UnregisterStudent(token) == OutcomeApplied {
		return
	}
	m.UnregisterTeacher(token)
}

// AskQuestion starts a new question. Validation happens before any
// mutation, so a rejected ask leaves the session untouched.
func (m *Manager) AskQuestion(teacherToken, text string, options []string, timeLimitSec int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.isTeacher(teacherToken) {
		return "", ErrUnauthorized
	}
	if !m.sess.canAskNewQuestion() {
		return "", fmt.Errorf("%w: students are still answering the current question", ErrInvalidInput)
	}
	text = sanitizeQuestionText(text)
	if text == "" {
		return "", fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	opts := sanitizeOptions(options)
	if len(opts) < 2 {
		return "", fmt.Errorf("%w: at least 2 non-empty options are required", ErrInvalidInput)
	}
	limit := clampTimeLimit(timeLimitSec)

	// A fully answered question can still be active here (zero students, or
	// the stragglers left). Close it into history before starting the next
	// one so closure stays the only Active-to-Idle transition.
	if m.sess.current != nil {
		m.closeCurrentLocked("superseded")
	}

	q := &Question{
		ID:           uuid.NewString(),
		Text:         text,
		Options:      opts,
		TimeLimitSec: limit,
		StartedAt:    time.Now(),
	}
	m.sess.beginQuestion(q)
	m.scheduleCloseLocked(q)

	slog.Info("question started", "question_id", q.ID, "options", len(q.Options), "time_limit_sec", q.TimeLimitSec)
	m.afterMutationLocked("ask-question")
	return q.ID, nil
}

// SubmitAnswer records one vote. Stale, duplicate, and out-of-range
// submissions are expected under network jitter and are ignored without
// error or publish. The last outstanding answer closes the question.
func (m *Manager) SubmitAnswer(studentToken string, optionIndex int) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.recordAnswer(studentToken, optionIndex) {
		return OutcomeIgnored
	}

	if m.sess.allAnswered() {
		m.closeCurrentLocked("all answered")
		m.afterMutationLocked("end-question")
	} else {
		m.afterMutationLocked("submit-answer")
	}
	return OutcomeApplied
}

// EndQuestion is the teacher-initiated close. Closing when no question is
// active is ignored, which makes the teacher/timer race harmless: whichever
// path runs first wins and the other becomes a no-op.
func (m *Manager) EndQuestion(teacherToken string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.isTeacher(teacherToken) {
		return OutcomeIgnored, ErrUnauthorized
	}
	if m.sess.current == nil {
		m.sched.Cancel()
		return OutcomeIgnored, nil
	}
	m.closeCurrentLocked("ended by teacher")
	m.afterMutationLocked("end-question")
	return OutcomeApplied, nil
}

// Reset replaces the entire session with a fresh empty one.
func (m *Manager) Reset(teacherToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sess.isTeacher(teacherToken) {
		return ErrUnauthorized
	}
	m.sched.Cancel()
	m.sess = newSession()
	slog.Info("session reset")
	m.afterMutationLocked("reset")
	return nil
}

// PublicState returns the projection served by GET /state.
func (m *Manager) PublicState() models.PublicState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.projectionLocked()
}

// Load restores the session from the snapshot store. Absent or corrupt
// snapshots fall back to a fresh session; an unreachable store is an
// external fault surfaced to the caller. If a question was mid-flight at
// save time its closure timer is rescheduled with the remaining time, or
// it is closed immediately when the limit already passed.
func (m *Manager) Load(ctx context.Context) error {
	snap, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptSnapshot) {
			slog.Warn("snapshot unreadable, starting fresh", "error", err)
			return nil
		}
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return nil
	}

	sess, err := sessionFromSnapshot(snap)
	if err != nil {
		slog.Warn("snapshot inconsistent, starting fresh", "error", err)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess

	if q := sess.current; q != nil {
		remaining := time.Duration(q.TimeLimitSec)*time.Second - time.Since(q.StartedAt)
		if remaining <= 0 {
			m.closeCurrentLocked("expired while down")
			m.afterMutationLocked("restore")
		} else {
			m.scheduleCloseLocked(q)
		}
	}

	slog.Info("session restored",
		"students", len(sess.students),
		"has_question", sess.current != nil,
		"history", sess.history.len(),
	)
	return nil
}

// Close cancels any pending timer and writes a final snapshot.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sched.Cancel()
	if err := m.store.Save(ctx, m.snapshotLocked()); err != nil {
		return fmt.Errorf("final snapshot save: %w", err)
	}
	return nil
}

// scheduleCloseLocked arms the closure timer for the question. The callback
// carries the question ID so a stale timer from a superseded question can
// never close a newer one.
func (m *Manager) scheduleCloseLocked(q *Question) {
	qid := q.ID
	m.sched.Schedule(time.Duration(q.TimeLimitSec)*time.Second, func() {
		m.expireQuestion(qid)
	})
}

func (m *Manager) expireQuestion(qid string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess.current == nil || m.sess.current.ID != qid {
		return
	}
	m.closeCurrentLocked("timeout")
	m.afterMutationLocked("end-question")
}

// closeCurrentLocked is the single Active-to-Idle transition. Idempotent:
// with no active question it only cancels the timer.
func (m *Manager) closeCurrentLocked(reason string) {
	m.sched.Cancel()
	entry := m.sess.closeQuestion()
	if entry == nil {
		return
	}
	total := 0
	for _, n := range entry.Results {
		total += n
	}
	slog.Info("question closed", "question_id", entry.ID, "reason", reason, "total_votes", total)
}

// afterMutationLocked publishes the projection and persists the snapshot.
// A failing store is logged loudly but does not roll back the applied
// command; in-memory state stays authoritative.
func (m *Manager) afterMutationLocked(command string) {
	state := m.projectionLocked()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.snapshotLocked()); err != nil {
		slog.Error("snapshot save failed", "command", command, "error", err)
	}

	if m.bcast != nil {
		m.bcast.Broadcast(state)
	}
}

func (m *Manager) projectionLocked() models.PublicState {
	s := m.sess

	state := models.PublicState{
		StudentCount: len(s.students),
		Students:     make([]models.RosterEntry, 0, len(s.students)),
		History:      make([]models.HistoryEntry, 0, s.history.len()),
	}

	for _, rec := range s.students {
		state.Students = append(state.Students, models.RosterEntry{
			ID:          rec.ID,
			Name:        rec.Name,
			HasAnswered: rec.HasAnswered,
		})
	}
	sort.Slice(state.Students, func(i, j int) bool {
		return state.Students[i].Name < state.Students[j].Name
	})

	if q := s.current; q != nil {
		state.HasQuestion = true
		state.CurrentQuestion = &models.PublicQuestion{
			ID:           q.ID,
			Text:         q.Text,
			Options:      append([]string(nil), q.Options...),
			TimeLimitSec: q.TimeLimitSec,
			StartedAtMs:  q.StartedAt.UnixMilli(),
		}
		counts := append([]int(nil), s.tally...)
		total := 0
		for _, n := range counts {
			total += n
		}
		state.Results = &models.Results{Counts: counts, Total: total}
	}

	for _, e := range s.history.view() {
		state.History = append(state.History, models.HistoryEntry{
			ID:           e.ID,
			Text:         e.Text,
			Options:      append([]string(nil), e.Options...),
			Results:      append([]int(nil), e.Results...),
			StartedAtMs:  e.StartedAtMs,
			TimeLimitSec: e.TimeLimitSec,
		})
	}

	return state
}

func sanitizeQuestionText(text string) string {
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > MaxQuestionLen {
		text = string(r[:MaxQuestionLen])
	}
	return text
}

// sanitizeOptions trims every option and drops the empty ones, preserving order.
func sanitizeOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

func clampTimeLimit(sec int) int {
	if sec <= 0 {
		return DefaultTimeLimitSec
	}
	if sec < MinTimeLimitSec {
		return MinTimeLimitSec
	}
	if sec > MaxTimeLimitSec {
		return MaxTimeLimitSec
	}
	return sec
}
