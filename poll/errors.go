// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "errors"

var (
	// ErrUnauthorized means the caller's token does not match the registered teacher.
	ErrUnauthorized = errors.New("caller is not the registered teacher")

	// ErrConflict means a second teacher tried to register, or a student name is taken.
	ErrConflict = errors.New("registration conflict")

	// ErrInvalidInput means a malformed question or a question asked while one is in progress.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the target of remove-student does not exist.
	ErrNotFound = errors.New("target not found")

	// ErrCorruptSnapshot wraps snapshot payloads that cannot be decoded.
	// The manager falls back to a fresh session when it sees this.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Outcome distinguishes commands that changed state from expected benign
// misses (stale submits, duplicate disconnects) that leave state untouched.
// Rejections are reported as errors, not outcomes.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeIgnored
)

func (o Outcome) String() string {
	if o == OutcomeApplied {
		return "applied"
	}
	return "ignored"
}
