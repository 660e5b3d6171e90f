// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxNameLen is the display-name cap; longer names are truncated, not rejected.
	MaxNameLen = 40

	// MaxQuestionLen is the question-text cap; longer text is truncated.
	MaxQuestionLen = 200

	// Time limit bounds in seconds. Out-of-range values are clamped,
	// absent/zero/negative values get the default.
	MinTimeLimitSec     = 5
	MaxTimeLimitSec     = 300
	DefaultTimeLimitSec = 60
)

// StudentRecord is one registered student. ID is the public roster
// identifier; the secret token keying the session map never leaves the core.
type StudentRecord struct {
	ID          string
	Name        string
	HasAnswered bool
}

// Question is the active question. Immutable once created.
type Question struct {
	ID           string
	Text         string
	Options      []string
	TimeLimitSec int
	StartedAt    time.Time
}

// session is the authoritative state of one poll run. All access goes
// through the Manager mutex; nothing here locks.
type session struct {
	teacherToken string
	students     map[string]*StudentRecord
	names        map[string]struct{}

	current     *Question
	tally       []int
	submissions map[string]int

	history historyLog
}

func newSession() *session {
	return &session{
		students: make(map[string]*StudentRecord),
		names:    make(map[string]struct{}),
	}
}

func (s *session) registerTeacher(token string) error {
	if s.teacherToken != "" && s.teacherToken != token {
		return fmt.Errorf("%w: another teacher is already registered", ErrConflict)
	}
	s.teacherToken = token
	return nil
}

// unregisterTeacher clears the teacher slot only on a token match.
// A late or duplicate disconnect is harmless.
func (s *session) unregisterTeacher(token string) bool {
	if s.teacherToken != token || token == "" {
		return false
	}
	s.teacherToken = ""
	return true
}

func (s *session) isTeacher(token string) bool {
	return token != "" && token == s.teacherToken
}

// SanitizeName trims and truncates a display name to MaxNameLen runes.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	return name
}

// registerStudent inserts a student under the given token. The name set and
// the student map are only ever updated together, here and in the removal
// paths, so they cannot drift.
func (s *session) registerStudent(token, id, name string) (*StudentRecord, error) {
	name = SanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, taken := s.names[name]; taken {
		return nil, fmt.Errorf("%w: name %q is already taken", ErrConflict, name)
	}
	if _, exists := s.students[token]; exists {
		return nil, fmt.Errorf("%w: token already registered", ErrConflict)
	}

	rec := &StudentRecord{ID: id, Name: name}
	s.students[token] = rec
	s.names[name] = struct{}{}
	return rec, nil
}

func (s *session) unregisterStudent(token string) bool {
	rec, ok := s.students[token]
	if !ok {
		return false
	}
	delete(s.students, token)
	delete(s.names, rec.Name)
	return true
}

// tokenByStudentID resolves a public roster ID to the secret token.
func (s *session) tokenByStudentID(id string) (string, bool) {
	for token, rec := range s.students {
		if rec.ID == id {
			return token, true
		}
	}
	return "", false
}

// allAnswered reports whether every currently registered student has
// submitted for the active question. True with zero students.
func (s *session) allAnswered() bool {
	for _, rec := range s.students {
		if !rec.HasAnswered {
			return false
		}
	}
	return true
}

// canAskNewQuestion gates ask-question so the teacher cannot overwrite a
// question students are still mid-vote on.
func (s *session) canAskNewQuestion() bool {
	if s.current == nil {
		return true
	}
	return s.allAnswered()
}

// beginQuestion installs a new active question with empty tally and
// submission log and resets every student's answered flag.
func (s *session) beginQuestion(q *Question) {
	s.current = q
	s.tally = make([]int, len(q.Options))
	s.submissions = make(map[string]int)
	for _, rec := range s.students {
		rec.HasAnswered = false
	}
}

// recordAnswer applies one vote. Returns false for every expected benign
// miss: no active question, unknown student, duplicate submission,
// out-of-range index.
func (s *session) recordAnswer(token string, optionIndex int) bool {
	if s.current == nil {
		return false
	}
	rec, ok := s.students[token]
	if !ok {
		return false
	}
	if _, dup := s.submissions[token]; dup {
		return false
	}
	if optionIndex < 0 || optionIndex >= len(s.current.Options) {
		return false
	}

	s.submissions[token] = optionIndex
	s.tally[optionIndex]++
	rec.HasAnswered = true
	return true
}

// closeQuestion retires the active question into the history log and
// returns the recorded entry. Nil if no question is active, which makes
// closure idempotent no matter which path triggered it.
func (s *session) closeQuestion() *historyEntry {
	if s.current == nil {
		return nil
	}
	q := s.current

	results := make([]int, len(s.tally))
	copy(results, s.tally)

	entry := historyEntry{
		ID:           q.ID,
		Text:         q.Text,
		Options:      q.Options,
		Results:      results,
		StartedAtMs:  q.StartedAt.UnixMilli(),
		TimeLimitSec: q.TimeLimitSec,
	}
	s.history.prepend(entry)

	s.current = nil
	s.tally = nil
	s.submissions = nil
	return &entry
}
