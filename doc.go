// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ClassPulse server.

ClassPulse runs a live classroom poll: one teacher drives a sequence of
single-choice questions, students submit one answer each, and everyone
watches the aggregated results arrive in real time over WebSocket.

# Starting the Server

The server runs standalone with in-memory state:

	go run .

Or with a persistent snapshot backend:

	STORE_BACKEND=sql DATABASE_URL=classpulse.db go run .
	STORE_BACKEND=redis REDIS_URL=redis://localhost:6379/0 go run .

# Configuration

Optional settings (flags or environment, .env supported):

  - PORT (-p): server port (default 3319)
  - STORE_BACKEND (-s): memory, redis, or sql (default memory)
  - REDIS_URL (-r): Redis connection URL for the redis backend
  - DATABASE_URL (-d): connection string for the sql backend
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - SNAPSHOT_KEY (-k): key the session snapshot is stored under

# Architecture

One poll session per process. The poll package owns all authoritative
state behind a single mutex; everything else is plumbing around it:

  - poll: the state machine (identity, question lifecycle, history)
  - store: snapshot persistence (memory, Redis, sqlite/postgres)
  - hub: WebSocket fan-out of the public projection
  - handlers: HTTP command surface
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response/projection types
  - auth: participant token generation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
