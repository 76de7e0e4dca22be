// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package internal

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// Level returns a terminal log level: debug if verbose, warn otherwise.
func Level(verbose bool) (level *slog.LevelVar) {
	level = new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	if verbose {
		level.Set(slog.LevelDebug)
	}

	return
}

// NewLogger returns a logger writing text records at level to terminal,
// and JSON records of every level to each of the extra writers.
func NewLogger(terminal io.Writer, level slog.Leveler, extra ...io.Writer) *slog.Logger {
	handlers := []slog.Handler{
		slog.NewTextHandler(terminal, &slog.HandlerOptions{Level: level}),
	}
	for _, w := range extra {
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}
