// Package logging wires up the process-wide structured logger used by the
// CLI and benchmark tools.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New returns a charmbracelet/log logger at the given level, writing to
// stderr with a report-caller-free, timestamped format suitable for a
// short-lived CLI invocation.
func New(level log.Level) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger
}

// NewRunID returns a fresh correlation id for tagging the log lines of a
// single planning run; `mapfplan solve` attaches it to its log lines.
func NewRunID() string {
	return uuid.NewString()
}
