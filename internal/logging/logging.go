// Package logging builds the process-wide structured logger, adapted from
// the teacher's trader-go/pkg/logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a structured logger at level (debug|info|warn|error). In dev
// mode it writes a human-readable console format instead of JSON.
func New(level string, devMode bool) zerolog.Logger {
	parsed := zerolog.InfoLevel
	switch level {
	case "debug":
		parsed = zerolog.DebugLevel
	case "warn":
		parsed = zerolog.WarnLevel
	case "error":
		parsed = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if devMode {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
