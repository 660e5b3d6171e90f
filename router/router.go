// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/classpulse/handlers"
	"github.com/danielhkuo/classpulse/hub"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/poll"
)

func NewRouter(mgr *poll.Manager, h *hub.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(mgr)
	questionHandler := handlers.NewQuestionHandler(mgr)
	stateHandler := handlers.NewStateHandler(mgr)
	wsHandler := handlers.NewWSHandler(mgr, h)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session membership
	mux.HandleFunc("POST /session/teacher", middleware.WithLogging(sessionHandler.JoinTeacher))
	mux.HandleFunc("DELETE /session/teacher", middleware.WithLogging(sessionHandler.LeaveTeacher))
	mux.HandleFunc("POST /session/students", middleware.WithLogging(sessionHandler.JoinStudent))
	mux.HandleFunc("DELETE /session/students/me", middleware.WithLogging(sessionHandler.LeaveStudent))

	// Teacher-only session control
	mux.HandleFunc("DELETE /session/students/{id}", middleware.WithLogging(sessionHandler.RemoveStudent))
	mux.HandleFunc("POST /session/reset", middleware.WithLogging(sessionHandler.Reset))

	// Question lifecycle
	mux.HandleFunc("POST /questions", middleware.WithLogging(questionHandler.Ask))
	mux.HandleFunc("POST /questions/current/answer", middleware.WithLogging(questionHandler.Submit))
	mux.HandleFunc("DELETE /questions/current", middleware.WithLogging(questionHandler.End))

	// State: one-shot projection and the live push channel
	mux.HandleFunc("GET /state", middleware.WithLogging(stateHandler.GetState))
	mux.HandleFunc("GET /ws", wsHandler.Subscribe)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classpulse API v1"))
	})

	return mux
}
