// Package logging configures the process logger. Results print to stdout,
// so logs always go to the writer the caller hands in, stderr by default.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds log output settings.
type Config struct {
	Level  string // trace, debug, info, warn, error, fatal, panic
	Pretty bool   // human-readable console output instead of JSON
}

// New builds the process logger. Level names follow zerolog's, with the
// empty string meaning info. The level is set on the returned logger, not
// globally, so tests can run loggers at different levels side by side.
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
