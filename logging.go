package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// setupLogging installs the default slog logger from the log flags. It
// returns a closer for the log file, if one was opened. When quiet is set
// and no log file was given, logs are discarded so they cannot draw over a
// full-screen UI.
func setupLogging(quiet bool) (io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(flagLogLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	case quiet:
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}

	handler, err := newHandler(out, level, flagLogFormat)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	slog.SetDefault(slog.New(handler))
	return closer, nil
}

// newHandler builds a slog handler. "auto" picks the styled text handler
// for terminals and JSON otherwise.
func newHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	format = strings.ToLower(format)
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}

	switch format {
	case "text":
		return log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Prefix:          "rectangles",
			Level:           log.Level(level),
		}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want auto, text or json)", format)
	}
}
