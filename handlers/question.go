// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/poll"
)

// QuestionHandler covers the question lifecycle: ask, answer, end.
type QuestionHandler struct {
	mgr *poll.Manager
}

func NewQuestionHandler(mgr *poll.Manager) *QuestionHandler {
	return &QuestionHandler{mgr: mgr}
}

// Ask handles POST /questions (teacher only)
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	questionID, err := h.mgr.AskQuestion(r.Header.Get(TokenHeader), req.Text, req.Options, req.TimeLimitSec)
	if err != nil {
		writeCommandError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AskQuestionResponse{QuestionID: questionID})
}

// Submit handles POST /questions/current/answer (student).
// Stale, duplicate, and out-of-range submissions come back as
// status "ignored", never as errors - clients retry under jitter and
// the session must shrug those off.
func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is required")
		return
	}

	outcome := h.mgr.SubmitAnswer(r.Header.Get(TokenHeader), *req.OptionIndex)
	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: outcome.String()})
}

// End handles DELETE /questions/current (teacher only). Ending when no
// question is active reports "ignored".
func (h *QuestionHandler) End(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.mgr.EndQuestion(r.Header.Get(TokenHeader))
	if err != nil {
		writeCommandError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: outcome.String()})
}
