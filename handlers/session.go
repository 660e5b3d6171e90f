// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/poll"
)

// SessionHandler covers joining, leaving, removal, and reset.
type SessionHandler struct {
	mgr *poll.Manager
}

func NewSessionHandler(mgr *poll.Manager) *SessionHandler {
	return &SessionHandler{mgr: mgr}
}

// JoinTeacher handles POST /session/teacher.
// A returning teacher sends their previous token to re-register; a fresh
// join gets a new one. A different active teacher means Conflict.
func (h *SessionHandler) JoinTeacher(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		var err error
		token, err = auth.GenerateParticipantToken()
		if err != nil {
			slog.Error("failed to generate teacher token", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join")
			return
		}
	}

	if err := h.mgr.RegisterTeacher(token); err != nil {
		writeCommandError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.JoinTeacherResponse{Token: token})
}

// LeaveTeacher handles DELETE /session/teacher. Always succeeds; a stale
// token simply does nothing.
func (h *SessionHandler) LeaveTeacher(w http.ResponseWriter, r *http.Request) {
	outcome := h.mgr.UnregisterTeacher(r.Header.Get(TokenHeader))
	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: outcome.String()})
}

// JoinStudent handles POST /session/students
func (h *SessionHandler) JoinStudent(w http.ResponseWriter, r *http.Request) {
	var req models.JoinStudentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	token, err := auth.GenerateParticipantToken()
	if err != nil {
		slog.Error("failed to generate student token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join")
		return
	}
	// Short public roster ID; the secret token never appears in the roster
	studentID, err := auth.GenerateID(8)
	if err != nil {
		slog.Error("failed to generate student id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join")
		return
	}

	if err := h.mgr.RegisterStudent(token, studentID, req.Name); err != nil {
		writeCommandError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.JoinStudentResponse{
		Token:     token,
		StudentID: studentID,
	})
}

// LeaveStudent handles DELETE /session/students/me
func (h *SessionHandler) LeaveStudent(w http.ResponseWriter, r *http.Request) {
	outcome := h.mgr.UnregisterStudent(r.Header.Get(TokenHeader))
	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: outcome.String()})
}

// RemoveStudent handles DELETE /session/students/{id} (teacher only).
// The id is the public roster ID from the projection, never a token.
func (h *SessionHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	if targetID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student id is required")
		return
	}

	if err := h.mgr.RemoveStudent(r.Header.Get(TokenHeader), targetID); err != nil {
		writeCommandError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: "ok"})
}

// Reset handles POST /session/reset (teacher only).
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Reset(r.Header.Get(TokenHeader)); err != nil {
		writeCommandError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CommandResponse{Status: "ok"})
}
