package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/justchokingaround/vidstream/internal/config"
	"github.com/justchokingaround/vidstream/internal/tui/common"
)

// Start runs the TUI until the user quits. When v is not nil, changes to
// the config file are pushed into the running program.
func Start(ctx context.Context, opts Options, v *viper.Viper) error {
	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if v != nil && v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			app.logger.Info("config file changed", "name", e.Name)
			var cfg config.Config
			if err := v.Unmarshal(&cfg); err != nil {
				app.logger.Error("failed to reload config", "error", err)
				return
			}
			if err := cfg.Validate(); err != nil {
				app.logger.Error("ignoring invalid config", "error", err)
				return
			}
			p.Send(ReloadMsg(&cfg))
		})
		v.WatchConfig()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// ReloadMsg extracts the hot reloadable values of cfg
func ReloadMsg(cfg *config.Config) common.ConfigReloadedMsg {
	return common.ConfigReloadedMsg{
		EmbedBase: cfg.Embed.BaseURL,
		Debounce:  cfg.Search.Debounce,
		LoadDelay: cfg.Embed.LoadDelay,
	}
}
