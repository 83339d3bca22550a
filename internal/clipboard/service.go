// Package clipboard copies embed addresses to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/justchokingaround/vidstream/internal/config"
)

// ErrNoClipboardTool is returned when neither the clipboard package nor any
// known command line tool can be used
var ErrNoClipboardTool = errors.New("no clipboard tool found (install xclip, xsel, or wl-clipboard)")

// Service copies text to the system clipboard
type Service interface {
	Copy(ctx context.Context, text string) error
}

type clipboardService struct {
	cfg    config.ClipboardConfig
	logger *slog.Logger

	// primary is the in-process writer, replaced in tests
	primary func(string) error
}

// NewService creates a clipboard service. A configured command is only used
// when the clipboard package fails.
func NewService(cfg config.ClipboardConfig, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &clipboardService{
		cfg:     cfg,
		logger:  logger,
		primary: clipboard.WriteAll,
	}
}

// Copy writes text, falling back to the configured or a detected command
func (s *clipboardService) Copy(ctx context.Context, text string) error {
	err := s.primary(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "text_length", len(text))
		return nil
	}
	s.logger.Warn("failed to copy to clipboard using primary method", "error", err)

	parts, err := s.fallbackCommand()
	if err != nil {
		return err
	}
	return s.run(ctx, parts, text)
}

func (s *clipboardService) fallbackCommand() ([]string, error) {
	if s.cfg.Command != "" {
		parts := parseCommand(s.cfg.Command)
		if len(parts) == 0 {
			return nil, fmt.Errorf("invalid clipboard command in config: %q", s.cfg.Command)
		}
		return parts, nil
	}

	switch runtime.GOOS {
	case "windows":
		return []string{"clip.exe"}, nil
	case "darwin":
		return []string{"pbcopy"}, nil
	case "linux":
		if isWSL() {
			return []string{"clip.exe"}, nil
		}
		switch {
		case commandExists("wl-copy"):
			return []string{"wl-copy"}, nil
		case commandExists("xclip"):
			return []string{"xclip", "-selection", "clipboard"}, nil
		case commandExists("xsel"):
			return []string{"xsel", "--clipboard", "--input"}, nil
		}
	}
	return nil, ErrNoClipboardTool
}

func (s *clipboardService) run(ctx context.Context, parts []string, text string) error {
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)

	s.logger.Debug("attempting clipboard command", "command", parts, "text_length", len(text))
	if err := cmd.Run(); err != nil {
		s.logger.Error("clipboard command failed", "error", err, "command", parts)
		return fmt.Errorf("clipboard command %s failed: %w", parts[0], err)
	}
	return nil
}

// parseCommand splits a command line into arguments, respecting quotes
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range command {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ' ':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}

// isWSL reports whether we run under Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
