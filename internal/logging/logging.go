// Package logging builds the process logger.
package logging

import (
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config selects the level, output style and identity fields of the
// process logger.
type Config struct {
	Level    string
	Pretty   bool
	Service  string
	Instance string
	// SampleN keeps one in N debug and info events. Warnings and errors
	// are never sampled. Values below 2 disable sampling.
	SampleN uint32
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger for cfg and routes the standard library logger
// through it. An unknown level falls back to info.
func New(cfg Config) zerolog.Logger {
	var level = zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && l != zerolog.NoLevel {
		level = l
	}

	var out = cfg.Output
	if out == nil {
		out = os.Stderr
	}
	var w = out
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	var ctx = zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.Instance != "" {
		ctx = ctx.Str("instance", cfg.Instance)
	}
	var logger = ctx.Logger()
	if cfg.SampleN > 1 {
		logger = logger.Sample(&zerolog.LevelSampler{
			DebugSampler: &zerolog.BasicSampler{N: cfg.SampleN},
			InfoSampler:  &zerolog.BasicSampler{N: cfg.SampleN},
		})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)
	return logger
}

// Instance guesses an instance identifier from the environment: the
// container hostname, or the empty string.
func Instance() string {
	if id := os.Getenv("INSTANCE_ID"); id != "" {
		return id
	}
	var host, err = os.Hostname()
	if err != nil {
		return ""
	}
	return host
}
