// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and projection types for the API.

# Request Types

Types for parsing incoming JSON:

  - JoinStudentRequest: name
  - AskQuestionRequest: text, options, time_limit_sec
  - SubmitAnswerRequest: option_index

# Response Types

Types for JSON responses:

  - JoinTeacherResponse: token
  - JoinStudentResponse: token, student_id
  - AskQuestionResponse: question_id
  - CommandResponse: status ("ok", "applied", "ignored")
  - ErrorResponse: error, message

# Projection Types

PublicState is the single payload every observer sees. It is produced by
the poll manager after each state-changing command, pushed over the
WebSocket hub, and served by GET /state:

  - PublicQuestion: the active question without tally internals
  - Results: per-option counts plus their sum
  - RosterEntry: student roster line (public ID, name, has_answered)
  - HistoryEntry: closed question with its final counts

Participant tokens and individual vote choices never appear in any
projection type.

# Constants

Store backends:

	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQL    = "sql"
*/
package models
