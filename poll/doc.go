// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the live classroom poll state machine.

One Manager owns one Session: the single teacher, the set of students with
globally unique display names, at most one active question with its tally
and submission log, and a bounded most-recent-first history of closed
questions (10 entries).

# Commands

Every command is applied as one atomic step under the Manager mutex:

	mgr := poll.NewManager(store, broadcaster, nil)
	err := mgr.RegisterTeacher(token)
	err  = mgr.RegisterStudent(token, id, "Alice")
	qid, err := mgr.AskQuestion(teacherToken, "Pick one", []string{"a", "b"}, 60)
	outcome := mgr.SubmitAnswer(studentToken, 0)
	outcome, err := mgr.EndQuestion(teacherToken)
	err = mgr.Reset(teacherToken)

Rejections are sentinel errors (ErrUnauthorized, ErrConflict,
ErrInvalidInput, ErrNotFound) reported to the immediate caller only;
validation happens before any mutation. Expected benign misses (submitting
with no active question, duplicate submissions, out-of-range option
indexes, redundant disconnects) return OutcomeIgnored with no error,
leave state unchanged, and skip the publish.

# Question closure

A question closes exactly once, through closeCurrentLocked, when any of
these happens first:

  - the last outstanding registered student submits
  - the closure timer expires
  - the teacher ends it explicitly

Whichever path runs first wins; the others become no-ops. The timer
callback carries the question ID so a stale timer from a superseded
question can never close a newer one.

# Ports

The Manager talks to the outside world through three narrow ports:

  - Broadcaster: pushes the PublicState projection after each applied command
  - SnapshotStore: persists the session (memory, Redis, or SQL; see store)
  - Scheduler: the single cancellable closure timer (time.AfterFunc in
    production, a manual fake in tests)

# Projection

PublicState redacts the session for observers: question metadata, per-option
totals, the roster with answered flags, and the history. Participant tokens
and individual vote choices are never exposed.
*/
package poll
