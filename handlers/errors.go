// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/poll"
)

// TokenHeader carries the participant token issued at join time.
const TokenHeader = "X-Participant-Token"

// writeCommandError maps the poll error taxonomy onto HTTP statuses.
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poll.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, poll.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, poll.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, poll.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
