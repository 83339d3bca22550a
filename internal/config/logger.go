package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the application logger from cfg and installs it as the
// slog default. Every record carries a per-run session id so lines from
// concurrent runs sharing one log file can be told apart.
func InitLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	if cfg.File == "" {
		cfg.File = filepath.Join(getStateDir(), "vidstream", "vidstream.log")
	}

	writer, err := logWriter(cfg)
	if err != nil {
		return nil, err
	}

	logger := slog.New(newHandler(writer, cfg)).With("session", uuid.NewString())
	slog.SetDefault(logger)

	return logger, nil
}

// logWriter returns a rotating file writer, or stderr when File is "-"
func logWriter(cfg *LoggingConfig) (io.Writer, error) {
	if cfg.File == "-" {
		return os.Stderr, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	}, nil
}

func newHandler(w io.Writer, cfg *LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	if strings.ToLower(cfg.Format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	// colors only make sense on a terminal, never in the rotated file
	if cfg.Color && cfg.File == "-" {
		return NewColoredTextHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// levelColors maps a level name to its ANSI color code
var levelColors = map[string]string{
	"DEBUG": "90",
	"INFO":  "32",
	"WARN":  "33",
	"ERROR": "31",
}

// ColoredTextHandler wraps slog.TextHandler and colors the level field
type ColoredTextHandler struct {
	handler slog.Handler
	writer  io.Writer
	opts    *slog.HandlerOptions
	attrs   []slog.Attr
	group   string
}

// NewColoredTextHandler creates a handler that colors console output by level
func NewColoredTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredTextHandler {
	return &ColoredTextHandler{
		handler: slog.NewTextHandler(w, opts),
		writer:  w,
		opts:    opts,
	}
}

// Handle implements slog.Handler
func (h *ColoredTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf strings.Builder
	var inner slog.Handler = slog.NewTextHandler(&buf, h.opts)
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	if h.group != "" {
		inner = inner.WithGroup(h.group)
	}
	if err := inner.Handle(ctx, r); err != nil {
		return err
	}

	_, err := io.WriteString(h.writer, colorize(buf.String(), r.Level.String()))
	return err
}

// colorize colors the first space separated field of line
func colorize(line, level string) string {
	code, ok := levelColors[level]
	if !ok {
		return line
	}
	head, tail, found := strings.Cut(line, " ")
	if !found {
		return fmt.Sprintf("\033[%sm%s\033[0m", code, line)
	}
	return fmt.Sprintf("\033[%sm%s\033[0m %s", code, head, tail)
}

// WithAttrs implements slog.Handler
func (h *ColoredTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler
func (h *ColoredTextHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithGroup(name)
	clone.group = name
	return &clone
}

// Enabled implements slog.Handler
func (h *ColoredTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
