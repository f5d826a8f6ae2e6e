// Package config loads server configuration from the environment.
package config

import (
	"os"
	"strings"
)

// Store backend selectors.
const (
	StoreSQLite = "sqlite"
	StoreDiskv  = "diskv"
)

type Config struct {
	DataPath   string
	ListenAddr string
	Store      string
	AuthUser   string
	AuthPass   string
	AuthFile   string
	// ShowGhosts enables read-only columns for archived topics that match
	// an active search.
	ShowGhosts bool
}

func Load() Config {
	_ = loadEnvFile()
	cfg := Config{
		DataPath:   os.Getenv("DAYGRID_DATA_PATH"),
		ListenAddr: envOr("DAYGRID_LISTEN_ADDR", "127.0.0.1:8080"),
		Store:      parseStoreBackend(os.Getenv("DAYGRID_STORE")),
		AuthUser:   os.Getenv("DAYGRID_AUTH_USER"),
		AuthPass:   os.Getenv("DAYGRID_AUTH_PASS"),
		AuthFile:   os.Getenv("DAYGRID_AUTH_FILE"),
	}
	cfg.ShowGhosts = parseBoolOr("DAYGRID_SHOW_GHOSTS", true)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseStoreBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StoreDiskv:
		return StoreDiskv
	default:
		return StoreSQLite
	}
}

func parseBoolOr(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
