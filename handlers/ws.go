// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/classpulse/hub"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/poll"
)

// WSHandler upgrades observers onto the broadcast hub.
type WSHandler struct {
	mgr *poll.Manager
	hub *hub.Hub
	up  websocket.Upgrader
}

func NewWSHandler(mgr *poll.Manager, h *hub.Hub) *WSHandler {
	return &WSHandler{
		mgr: mgr,
		hub: h,
		up: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is open for the API; the socket carries only the
			// public projection, so origin checks gate nothing.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /ws. The optional token query parameter ties the
// connection to a participant so their registration is cleaned up on
// disconnect; anonymous observers just watch.
func (h *WSHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Warn("websocket upgrade failed", "remote", middleware.GetClientIP(r), "error", err)
		return
	}

	initial, err := json.Marshal(h.mgr.PublicState())
	if err != nil {
		slog.Error("failed to encode initial state", "error", err)
		conn.Close()
		return
	}

	slog.Info("websocket subscribed", "remote", middleware.GetClientIP(r), "identified", token != "")
	h.hub.Serve(conn, token, initial)
}
