package main

import (
	"github.com/spf13/pflag"

	"github.com/bloglist/bloglist-api/internal/pkg/config"
)

// applyFlags parses args and overrides the fields of cfg whose flags were
// set explicitly. Unset flags leave the environment value in place.
func applyFlags(cfg *config.Config, args []string) error {
	fs := pflag.NewFlagSet("bloglist-api", pflag.ContinueOnError)
	port := fs.String("port", cfg.Port, "HTTP listen port (PORT)")
	logLevel := fs.String("log-level", cfg.LogLevel, "minimum log level: trace, debug, info, warn, error (LOG_LEVEL)")
	storage := fs.String("storage", cfg.Storage, "storage driver: mongo or memory (STORAGE_DRIVER)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.Changed("port") {
		cfg.Port = *port
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("storage") {
		cfg.Storage = *storage
	}
	return cfg.Validate()
}
