// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/poll"
)

// StateHandler serves the read-only projection.
type StateHandler struct {
	mgr *poll.Manager
}

func NewStateHandler(mgr *poll.Manager) *StateHandler {
	return &StateHandler{mgr: mgr}
}

// GetState handles GET /state. Open to anyone; the projection carries no
// tokens and no per-student vote choices.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.mgr.PublicState())
}
