package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/vidstream/internal/database"
	"github.com/justchokingaround/vidstream/internal/tui/common"
)

// selectItem opens the video overlay for the result at index.
// An index outside the current list does nothing.
func (a *App) selectItem(index int) tea.Cmd {
	sel, ok := a.playback.Select(a.results.Items(), index)
	if !ok {
		return nil
	}

	a.logger.Info("title selected", "id", sel.ItemID, "kind", sel.Kind, "title", sel.Title)
	a.search.Blur()
	return tea.Batch(a.player.Show(sel), a.scheduleEmbed(sel.Token))
}

func (a *App) changeEpisode(msg common.ChangeEpisodeMsg) tea.Cmd {
	sel, ok := a.playback.ChangeEpisode(msg.Season, msg.Episode)
	if !ok {
		return nil
	}

	a.logger.Debug("episode changed", "id", sel.ItemID, "season", sel.Season, "episode", sel.Episode)
	return tea.Batch(a.player.Reload(sel), a.scheduleEmbed(sel.Token))
}

// scheduleEmbed fires EmbedReadyMsg for token after the load delay
func (a *App) scheduleEmbed(token uint64) tea.Cmd {
	return tea.Tick(a.loadDelay, func(time.Time) tea.Msg {
		return common.EmbedReadyMsg{Token: token}
	})
}

// installEmbed swaps the placeholder for the embed of the active selection.
// Ticks from superseded loads are ignored.
func (a *App) installEmbed(token uint64) {
	if !a.player.IsOpen() || !a.playback.IsCurrent(token) {
		a.logger.Debug("ignoring stale embed load", "token", token)
		return
	}

	sel, ok := a.playback.Current()
	if !ok {
		return
	}

	url := a.resolver.URL(sel)
	a.player.Install(url)
	a.logger.Info("embed installed", "id", sel.ItemID, "url", url)

	if a.history == nil {
		return
	}
	err := a.history.Record(database.History{
		MediaID:   sel.ItemID,
		MediaType: string(sel.Kind),
		Title:     sel.Title,
		Season:    sel.Season,
		Episode:   sel.Episode,
		EmbedURL:  url,
	})
	if err != nil {
		a.logger.Warn("failed to record playback history", "error", err)
	}
}

func (a *App) openEmbed() tea.Cmd {
	url := a.player.EmbedURL()
	if url == "" {
		return nil
	}
	openURL := a.openURL
	return func() tea.Msg {
		return common.ExternalActionMsg{Action: "open", Err: openURL(url)}
	}
}

func (a *App) copyEmbed() tea.Cmd {
	url := a.player.EmbedURL()
	if url == "" {
		return nil
	}
	ctx := a.ctx
	svc := a.clipboardSvc
	return func() tea.Msg {
		return common.ExternalActionMsg{Action: "copy", Err: svc.Copy(ctx, url)}
	}
}

func (a *App) handleExternalAction(msg common.ExternalActionMsg) {
	if msg.Err != nil {
		a.logger.Warn("external action failed", "action", msg.Action, "error", msg.Err)
		switch msg.Action {
		case "open":
			a.setStatus("Failed to open browser: "+msg.Err.Error(), true)
		default:
			a.setStatus("Failed to copy to clipboard: "+msg.Err.Error(), true)
		}
		return
	}

	switch msg.Action {
	case "open":
		a.setStatus("Opened player in browser", false)
	default:
		a.setStatus("Copied player address to clipboard", false)
	}
}

// closeOverlays hides both overlays; the video overlay is reset to its
// loading placeholder and the selection is discarded.
func (a *App) closeOverlays() tea.Cmd {
	if a.player.IsOpen() {
		a.player.Hide()
		a.playback.Close()
	}
	a.settings.Hide()
	return a.search.Focus()
}
