// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ClassPulse API.

# Handler Types

Each handler is a struct holding the poll manager (and hub, for /ws):

  - SessionHandler: joining, leaving, removal, reset
  - QuestionHandler: ask, answer, end
  - StateHandler: the public projection
  - WSHandler: WebSocket subscription

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(mgr)

# Identity

Joining issues a participant token returned in the response body; every
later command carries it in the X-Participant-Token header:

	POST   /session/teacher       → JoinTeacher (returns token)
	POST   /session/students      → JoinStudent (returns token + student_id)
	DELETE /session/teacher       → LeaveTeacher
	DELETE /session/students/me   → LeaveStudent

# Question Flow

	POST   /questions                 → Ask (teacher)
	POST   /questions/current/answer  → Submit (student)
	DELETE /questions/current         → End (teacher)

Teacher-only commands also cover the roster and the session:

	DELETE /session/students/{id}  → RemoveStudent (by public roster ID)
	POST   /session/reset          → Reset

# Statuses

Rejections map onto 401 (not the teacher), 409 (name or teacher slot
taken), 400 (malformed question), 404 (unknown student). Expected benign
misses - duplicate votes, stale submits, redundant leaves - return 200
with status "ignored" and change nothing.

# State

	GET /state  → the PublicState projection, open to anyone
	GET /ws     → the same projection pushed on every change
*/
package handlers
