// Package statuslog provides the append-only lifecycle log shared by the
// launcher and its spawned workers. Events go to one of two channels,
// "status" or "errors", as single-line zerolog JSON appends so concurrent
// processes never interleave within a line.
package statuslog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Logger writes timestamped events to the status and error channels.
type Logger struct {
	status  zerolog.Logger
	errors  zerolog.Logger
	closers []io.Closer
}

// New opens (or creates) the two channel files in append mode.
func New(statusPath, errorPath string) (*Logger, error) {
	statusFile, err := openAppend(statusPath)
	if err != nil {
		return nil, err
	}
	errorFile, err := openAppend(errorPath)
	if err != nil {
		statusFile.Close()
		return nil, err
	}

	l := NewWithWriters(statusFile, errorFile)
	l.closers = []io.Closer{statusFile, errorFile}
	return l, nil
}

// NewWithWriters builds a Logger over arbitrary writers.
func NewWithWriters(status, errors io.Writer) *Logger {
	return &Logger{
		status: zerolog.New(status).With().Timestamp().Str("channel", "status").Logger(),
		errors: zerolog.New(errors).With().Timestamp().Str("channel", "errors").Logger(),
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{status: zerolog.Nop(), errors: zerolog.Nop()}
}

// Status appends a message to the status channel.
func (l *Logger) Status(format string, args ...any) {
	l.status.Info().Msgf(format, args...)
}

// Error appends a message to the errors channel.
func (l *Logger) Error(format string, args ...any) {
	l.errors.Error().Msgf(format, args...)
}

// Close releases the underlying files, if any.
func (l *Logger) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// O_APPEND keeps each event atomic at the line level across processes.
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
