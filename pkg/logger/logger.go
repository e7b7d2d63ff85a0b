// Package logger builds the slog.Logger shared by the wizishop CLI and the
// mock API: plain text, JSON, or a colored console format for terminals.
package logger

import (
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/charmbracelet/log"
)

// Output formats accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Formats lists every supported format; Levels every supported level.
var (
	Formats = []string{FormatText, FormatJSON, FormatPretty}
	Levels  = []string{"debug", "info", "warn", "error"}
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New returns a logger writing to stderr. Unknown levels fall back to info
// and unknown formats to text; callers validate user input beforehand with
// ValidLevel and ValidFormat.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts))
	case FormatPretty:
		return slog.New(log.NewWithOptions(w, log.Options{
			Level:           log.Level(lvl),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "wizishop",
		}))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// ParseLevel maps one of Levels to its slog.Level, or LevelInfo.
func ParseLevel(level string) slog.Level {
	if lvl, ok := levels[level]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// ValidLevel reports whether level is one of Levels.
func ValidLevel(level string) bool {
	_, ok := levels[level]
	return ok
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}
