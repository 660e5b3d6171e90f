// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment
variables.

Flags take precedence; environment variables fill the gaps. A .env file in
the working directory is loaded first (godotenv), so local development
needs no exported shell variables.

# Settings

  - PORT (-p): server port (default 3319)
  - STORE_BACKEND (-s): snapshot store, one of memory, redis, sql
    (default memory)
  - REDIS_URL (-r): required for the redis backend
  - DATABASE_URL (-d): required for the sql backend
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - SNAPSHOT_KEY (-k): key the session snapshot is stored under
    (default "classpulse:session")
*/
package cliparse
