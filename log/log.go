package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Handler is the interface produced by this package: a plain [slog.Handler].
type Handler = slog.Handler

// Level is a severity accepted by [NewHandler] and [Config].
type Level string

// Severity levels, ordered least to most severe.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs in slog's default human-readable text
	// format.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// ParseLevel parses a log level string, case-insensitively, accepting
// "warning" as a synonym for "warn".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case string(LevelError):
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case string(LevelInfo):
		return LevelInfo, nil
	case string(LevelDebug):
		return LevelDebug, nil
	}

	return "", ErrUnknownLogLevel
}

// GetAllLevelStrings returns the accepted level strings, for flag help
// text and shell completion.
func GetAllLevelStrings() []string {
	return []string{string(LevelError), string(LevelWarn), string(LevelInfo), string(LevelDebug)}
}

// ParseFormat parses a log format string, case-insensitively.
func ParseFormat(format string) (Format, error) {
	switch logFmt := Format(strings.ToLower(format)); logFmt {
	case FormatJSON, FormatLogfmt, FormatText:
		return logFmt, nil
	}

	return "", ErrUnknownLogFormat
}

// GetAllFormatStrings returns the accepted format strings, for flag help
// text and shell completion.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}

// slogLevel converts l to its [slog.Level] equivalent.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewHandler creates a [Handler] with the specified level and format.
func NewHandler(w io.Writer, lvl Level, logFmt Format) Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: lvl.slogLevel()}

	if logFmt == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings parses logLevel and logFormat and creates a
// [Handler] by delegating to [NewHandler].
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (Handler, error) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, logFmt), nil
}
