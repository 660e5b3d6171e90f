// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is the persisted mirror of the session. The name set is
// serialized as an ordered list. Stores treat it as an opaque JSON blob.
type Snapshot struct {
	TeacherToken string             `json:"teacher_token,omitempty"`
	Students     []SnapshotStudent  `json:"students"`
	Names        []string           `json:"names"`
	Question     *SnapshotQuestion  `json:"question,omitempty"`
	Tally        []int              `json:"tally,omitempty"`
	Submissions  map[string]int     `json:"submissions,omitempty"`

	HistoryEntries []SnapshotHistoryEntry `json:"history"`
	SavedAtMs      int64                  `json:"saved_at_ms"`
}

type SnapshotStudent struct {
	Token       string `json:"token"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	HasAnswered bool   `json:"has_answered"`
}

type SnapshotQuestion struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	TimeLimitSec int      `json:"time_limit_sec"`
	StartedAtMs  int64    `json:"started_at_ms"`
}

type SnapshotHistoryEntry struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	Results      []int    `json:"results"`
	StartedAtMs  int64    `json:"started_at_ms"`
	TimeLimitSec int      `json:"time_limit_sec"`
}

// snapshotLocked builds a Snapshot from the current session.
func (m *Manager) snapshotLocked() *Snapshot {
	s := m.sess

	snap := &Snapshot{
		TeacherToken:   s.teacherToken,
		Students:       make([]SnapshotStudent, 0, len(s.students)),
		Names:          make([]string, 0, len(s.names)),
		HistoryEntries: make([]SnapshotHistoryEntry, 0, s.history.len()),
		SavedAtMs:      time.Now().UnixMilli(),
	}

	for token, rec := range s.students {
		snap.Students = append(snap.Students, SnapshotStudent{
			Token:       token,
			ID:          rec.ID,
			Name:        rec.Name,
			HasAnswered: rec.HasAnswered,
		})
	}
	sort.Slice(snap.Students, func(i, j int) bool {
		return snap.Students[i].Name < snap.Students[j].Name
	})
	for name := range s.names {
		snap.Names = append(snap.Names, name)
	}
	sort.Strings(snap.Names)

	if q := s.current; q != nil {
		snap.Question = &SnapshotQuestion{
			ID:           q.ID,
			Text:         q.Text,
			Options:      append([]string(nil), q.Options...),
			TimeLimitSec: q.TimeLimitSec,
			StartedAtMs:  q.StartedAt.UnixMilli(),
		}
		snap.Tally = append([]int(nil), s.tally...)
		snap.Submissions = make(map[string]int, len(s.submissions))
		for token, idx := range s.submissions {
			snap.Submissions[token] = idx
		}
	}

	for _, e := range s.history.view() {
		snap.HistoryEntries = append(snap.HistoryEntries, SnapshotHistoryEntry(e))
	}

	return snap
}

// sessionFromSnapshot rebuilds a session, re-deriving the name set from the
// student records. Inconsistent snapshots are rejected so the caller can
// fall back to a fresh session.
func sessionFromSnapshot(snap *Snapshot) (*session, error) {
	s := newSession()
	s.teacherToken = snap.TeacherToken

	for _, st := range snap.Students {
		if st.Token == "" || st.Name == "" {
			return nil, fmt.Errorf("student record missing token or name")
		}
		if _, dup := s.names[st.Name]; dup {
			return nil, fmt.Errorf("duplicate student name %q", st.Name)
		}
		if _, dup := s.students[st.Token]; dup {
			return nil, fmt.Errorf("duplicate student token")
		}
		s.students[st.Token] = &StudentRecord{ID: st.ID, Name: st.Name, HasAnswered: st.HasAnswered}
		s.names[st.Name] = struct{}{}
	}

	if q := snap.Question; q != nil {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("active question has %d options", len(q.Options))
		}
		if len(snap.Tally) != len(q.Options) {
			return nil, fmt.Errorf("tally length %d does not match %d options", len(snap.Tally), len(q.Options))
		}
		s.current = &Question{
			ID:           q.ID,
			Text:         q.Text,
			Options:      append([]string(nil), q.Options...),
			TimeLimitSec: q.TimeLimitSec,
			StartedAt:    time.UnixMilli(q.StartedAtMs),
		}
		s.tally = append([]int(nil), snap.Tally...)
		s.submissions = make(map[string]int, len(snap.Submissions))
		votes := 0
		for token, idx := range snap.Submissions {
			if idx < 0 || idx >= len(q.Options) {
				return nil, fmt.Errorf("submission index %d out of range", idx)
			}
			s.submissions[token] = idx
			votes++
		}
		total := 0
		for _, n := range s.tally {
			total += n
		}
		if total != votes {
			return nil, fmt.Errorf("tally total %d does not match %d submissions", total, votes)
		}
	}

	for _, e := range snap.HistoryEntries {
		s.history.entries = append(s.history.entries, historyEntry(e))
	}
	if s.history.len() > HistoryLimit {
		s.history.entries = s.history.entries[:HistoryLimit]
	}

	return s, nil
}
