package logging

import (
	"context"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewCharmLogger returns a logger that renders records with charmbracelet/log.
// Unknown level names fall back to warn.
func NewCharmLogger(w io.Writer, level string) *SlogLogger {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.WarnLevel
	}

	h := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          "pyhx",
		Level:           lvl,
		ReportTimestamp: true,
	})

	return NewSlogLogger(slog.New(h))
}

// NewNopLogger discards everything.
func NewNopLogger() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
