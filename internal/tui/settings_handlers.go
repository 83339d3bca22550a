package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/vidstream/internal/credential"
	"github.com/justchokingaround/vidstream/internal/providers/embed"
	"github.com/justchokingaround/vidstream/internal/tui/common"
)

const (
	statusKeySaved   = "API Key saved! Try searching now."
	statusKeyInvalid = "Please enter a valid API Key."
)

func (a *App) openSettings() tea.Cmd {
	key, err := a.credentials.Get(a.ctx)
	if err != nil {
		a.logger.Error("failed to read API key", "error", err)
	}
	a.search.Blur()
	return a.settings.Show(key)
}

// saveCredential stores key and, when the search box holds a query, runs
// that search once right away.
func (a *App) saveCredential(key string) tea.Cmd {
	err := a.credentials.Set(a.ctx, key)
	if errors.Is(err, credential.ErrInvalidCredential) {
		a.setStatus(statusKeyInvalid, true)
		return nil
	}
	if err != nil {
		a.logger.Error("failed to save API key", "error", err)
		a.setStatus("Failed to save API key: "+err.Error(), true)
		return nil
	}

	a.logger.Info("API key saved", "key", credential.Mask(key))
	a.settings.Hide()
	a.setStatus(statusKeySaved, false)

	var focus tea.Cmd
	if !a.player.IsOpen() {
		focus = a.search.Focus()
	}

	query := a.search.Query()
	if query == "" {
		return focus
	}
	// the search replaces the pending debounce tick; the cursor shows
	// without blinking until the next focus change
	a.search.CancelPending()
	return a.startSearch(query)
}

// applyConfig picks up values that may change while running
func (a *App) applyConfig(msg common.ConfigReloadedMsg) {
	if msg.EmbedBase != "" {
		a.resolver = embed.NewResolver(msg.EmbedBase)
	}
	if msg.Debounce >= 0 {
		a.search.SetDebounce(msg.Debounce)
	}
	if msg.LoadDelay >= 0 {
		a.loadDelay = msg.LoadDelay
	}
	a.logger.Info("configuration reloaded", "embed_base", msg.EmbedBase)
}
