package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// VerboseEnv switches the log level to debug when set to any value
const VerboseEnv = "USERDIR_VERBOSE"

// DefaultPath returns the log file location, under the user cache directory
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "userdir", "userdir.log")
}

// Open opens (appending) the log file and returns a logger writing to it.
// The terminal belongs to the TUI, so nothing is ever logged to stdout.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f), f, nil
}

// New builds the application logger on top of w and installs it as the
// global zerolog logger
func New(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv(VerboseEnv) != "" {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    false,
		TimeFormat: time.TimeOnly,
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	logger.Debug().Msgf("debug logging enabled by %s", VerboseEnv)
	return logger
}
