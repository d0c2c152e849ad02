// =============================================================================
// NetBox to Darkbot - Logging
// =============================================================================
//
// All diagnostics go to the error stream. Standard output is reserved for the
// generated Darkbot database, so nothing in this package may write to it.
//
// =============================================================================

package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the logging surface used by the pipeline.
// *log.Logger satisfies it; tests may substitute their own.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// New creates a logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "netbox2darkbot",
		ReportTimestamp: false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a configuration level name to a log.Level.
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, "error")
}
