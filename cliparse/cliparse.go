// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	StoreBackend string
	RedisURL     string
	DatabaseURL  string
	DatabaseType string
	SnapshotKey  string
}

// ParseFlags validates flags, with environment variables as fallback.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is the normal case, not an error
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("classpulse", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "s", "", "Snapshot store backend (memory, redis, or sql)")
	fs.StringVar(&cfg.RedisURL, "r", "", "Redis URL (redis backend)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sql backend)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.SnapshotKey, "k", "", "Snapshot key the session is stored under")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = "memory"
		}
	}
	switch cfg.StoreBackend {
	case "memory", "redis", "sql":
	default:
		return Config{}, errors.New("STORE_BACKEND must be memory, redis, or sql")
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.StoreBackend == "redis" && cfg.RedisURL == "" {
		return Config{}, errors.New("redis backend requires -r or REDIS_URL")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.StoreBackend == "sql" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("sql backend requires -d or DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	if cfg.SnapshotKey == "" {
		cfg.SnapshotKey = os.Getenv("SNAPSHOT_KEY")
		if cfg.SnapshotKey == "" {
			cfg.SnapshotKey = "classpulse:session"
		}
	}

	return cfg, nil
}
