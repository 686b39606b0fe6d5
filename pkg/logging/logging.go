// Package logging builds the structured slog loggers used across the console.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option adjusts logger construction.
type Option func(*options)

type options struct {
	w     io.Writer
	attrs []any
}

// WithWriter sends records to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

// WithAttrs attaches key/value pairs to every record, e.g. the service name
// and version.
func WithAttrs(args ...any) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, args...)
	}
}

// New creates a logger from cfg.
func New(cfg *Config, opts ...Option) *slog.Logger {
	o := options{w: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	build, ok := handlers[cfg.Format]
	if !ok {
		build = handlers[FormatText]
	}

	logger := slog.New(build(o.w, &slog.HandlerOptions{
		Level:     cfg.Level.ToSlogLevel(),
		AddSource: cfg.Source,
	}))

	if len(o.attrs) > 0 {
		logger = logger.With(o.attrs...)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Level is a logging severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel normalizes case and surrounding space before validating.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Validate()
}

func (l Level) Validate() error {
	if _, ok := levels[l]; !ok {
		return fmt.Errorf("invalid log level %q: want debug, info, warn, or error", string(l))
	}
	return nil
}

// ToSlogLevel maps the level onto slog. Unknown levels map to info.
func (l Level) ToSlogLevel() slog.Level {
	if lvl, ok := levels[l]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var handlers = map[Format]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	FormatText: func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	FormatJSON: func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

func (f Format) Validate() error {
	if _, ok := handlers[f]; !ok {
		return fmt.Errorf("invalid log format %q: want text or json", string(f))
	}
	return nil
}
