package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "HANDHELD_LISTEN"
	EnvDevMode    = "HANDHELD_DEV"
	EnvMaxScale   = "HANDHELD_MAX_SCALE"

	DefaultListenAddr = ":8080"
)

// ServerConfig contains settings for running the HTTP server.
type ServerConfig struct {
	// ListenAddr is empty when the web UI is switched off.
	ListenAddr string
	DevMode    bool
	// MaxScale caps the render endpoints' scale parameter. Zero keeps the
	// API default.
	MaxScale float64
}

// DefaultServerConfigFromEnv reads the server settings from the process
// environment.
func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	return ServerConfigFromEnv(os.Getenv, defaultListenAddr)
}

// ServerConfigFromEnv reads HANDHELD_LISTEN, HANDHELD_DEV and
// HANDHELD_MAX_SCALE through getenv. A listen address of "off" or "none"
// disables the server.
func ServerConfigFromEnv(getenv func(string) string, defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: strings.TrimSpace(getenv(EnvListenAddr))}
	switch strings.ToLower(cfg.ListenAddr) {
	case "":
		cfg.ListenAddr = defaultListenAddr
		if cfg.ListenAddr == "" {
			cfg.ListenAddr = DefaultListenAddr
		}
	case "off", "none":
		cfg.ListenAddr = ""
	}

	if raw := getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}

	if raw := getenv(EnvMaxScale); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return ServerConfig{}, fmt.Errorf("%s must be a positive number (got %q)", EnvMaxScale, raw)
		}
		cfg.MaxScale = parsed
	}

	return cfg, nil
}
