// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: wraps a handler with structured request/completion logs
  - CORS: permissive cross-origin headers plus OPTIONS preflight handling

# Helpers

  - JSONResponse: writes a JSON body with a status code
  - ErrorResponse: writes the standard {error, message} envelope
  - ParseJSONBody: decodes a request body into a struct
  - GetClientIP: best-effort client IP (X-Forwarded-For, X-Real-IP,
    RemoteAddr) used for connection logging
*/
package middleware
