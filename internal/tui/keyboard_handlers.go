package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// resultKeys move through or act on the result list while the search box
// keeps the focus
var resultKeys = map[string]bool{
	"up":     true,
	"down":   true,
	"ctrl+p": true,
	"ctrl+n": true,
	"pgup":   true,
	"pgdown": true,
	"enter":  true,
	"ctrl+f": true,
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "f1":
		a.help.SetContext(a.helpContext())
		a.help.Toggle()
		return nil
	}

	if a.help.IsVisible() {
		if msg.String() == "esc" {
			a.help.Hide()
		}
		return nil
	}

	if msg.String() == "esc" {
		if a.settings.IsOpen() || a.player.IsOpen() {
			return a.closeOverlays()
		}
		if a.results.IsFiltering() {
			var cmd tea.Cmd
			a.results, cmd = a.results.Update(msg)
			return cmd
		}
		return nil
	}

	if msg.String() == "ctrl+s" && !a.settings.IsOpen() {
		return a.openSettings()
	}

	if a.settings.IsOpen() {
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return cmd
	}

	// the video overlay captures every key while open
	if a.player.IsOpen() {
		var cmd tea.Cmd
		a.player, cmd = a.player.Update(msg)
		return cmd
	}

	if a.results.IsFiltering() || resultKeys[msg.String()] {
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return cmd
	}

	return a.updateSearch(msg)
}

// updateSearch forwards a key to the search box and reacts to query changes.
// Clearing the box clears the results and status in the same update.
func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	before := a.search.Query()

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)

	after := a.search.Query()
	if after == before {
		return cmd
	}

	if after == "" {
		a.clearResults()
	} else {
		a.setStatus(statusSearching, false)
	}
	return cmd
}
