// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

// HistoryLimit caps the closed-question log. Oldest entries drop on overflow.
const HistoryLimit = 10

// historyEntry is an immutable snapshot of a closed question.
type historyEntry struct {
	ID           string
	Text         string
	Options      []string
	Results      []int
	StartedAtMs  int64
	TimeLimitSec int
}

// historyLog is a most-recent-first bounded sequence. Prepend and read are
// the only operations; eviction on overflow is implicit.
type historyLog struct {
	entries []historyEntry
}

func (l *historyLog) prepend(e historyEntry) {
	l.entries = append([]historyEntry{e}, l.entries...)
	if len(l.entries) > HistoryLimit {
		l.entries = l.entries[:HistoryLimit]
	}
}

func (l *historyLog) len() int {
	return len(l.entries)
}

// view returns a copy so callers cannot mutate the log.
func (l *historyLog) view() []historyEntry {
	out := make([]historyEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
