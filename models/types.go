// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Store backend constants
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQL    = "sql"
)

// Request types

type JoinStudentRequest struct {
	Name string `json:"name"`
}

type AskQuestionRequest struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	TimeLimitSec int      `json:"time_limit_sec"`
}

// OptionIndex is a pointer so a missing field can be told apart from index 0.
type SubmitAnswerRequest struct {
	OptionIndex *int `json:"option_index"`
}

// Response types

type JoinTeacherResponse struct {
	Token string `json:"token"`
}

type JoinStudentResponse struct {
	Token     string `json:"token"`
	StudentID string `json:"student_id"`
}

type AskQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

type CommandResponse struct {
	Status string `json:"status"`
}

// Projection types
//
// PublicState is the read-only projection pushed to every observer after a
// state-changing command, and returned by GET /state. It never carries
// participant tokens or per-student vote choices.

type PublicQuestion struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	TimeLimitSec int      `json:"time_limit_sec"`
	StartedAtMs  int64    `json:"started_at_ms"`
}

type Results struct {
	Counts []int `json:"counts"`
	Total  int   `json:"total"`
}

type RosterEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HasAnswered bool   `json:"has_answered"`
}

type HistoryEntry struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	Results      []int    `json:"results"`
	StartedAtMs  int64    `json:"started_at_ms"`
	TimeLimitSec int      `json:"time_limit_sec"`
}

type PublicState struct {
	HasQuestion     bool            `json:"has_question"`
	CurrentQuestion *PublicQuestion `json:"current_question"`
	Results         *Results        `json:"results"`
	StudentCount    int             `json:"student_count"`
	Students        []RosterEntry   `json:"students"`
	History         []HistoryEntry  `json:"history"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
