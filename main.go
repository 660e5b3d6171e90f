// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/hub"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/poll"
	"github.com/danielhkuo/classpulse/router"
	"github.com/danielhkuo/classpulse/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the snapshot store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("snapshot store unavailable", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Snapshot store ready", "backend", cfg.StoreBackend)

	// Assemble the hub and the poll state machine
	h := hub.New()
	mgr := poll.NewManager(st, h, nil)
	h.SetDisconnectHandler(mgr.Disconnect)
	go h.Run()

	// Restore the previous session, if any
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = mgr.Load(ctx)
	cancel()
	if err != nil {
		slog.Error("session restore failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(mgr, h)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Final snapshot so the session survives the restart
	h.Close()
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mgr.Close(ctx); err != nil {
		slog.Error("final snapshot failed", "error", err)
	}
}
