package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/vidstream/internal/providers/tmdb"
	"github.com/justchokingaround/vidstream/internal/tui/common"
)

const (
	statusSearching = "Searching..."
	statusNoResults = "No results found"
	statusNoKey     = "⚠ API Key invalid or missing. Update in Settings (ctrl+s)."
)

// startSearch issues a catalog search tagged with a new sequence number.
// Without an API key nothing is sent.
func (a *App) startSearch(query string) tea.Cmd {
	key, err := a.credentials.Get(a.ctx)
	if err != nil {
		a.logger.Error("failed to read API key", "error", err)
	}
	if key == "" {
		a.setStatus(statusNoKey, true)
		return nil
	}

	a.searchSeq++
	seq := a.searchSeq
	a.setStatus(statusSearching, false)
	a.logger.Debug("search issued", "query", query, "seq", seq)

	ctx := a.ctx
	catalog := a.catalog
	return func() tea.Msg {
		items, err := catalog.SearchMulti(ctx, key, query)
		return common.SearchResultsMsg{Seq: seq, Query: query, Items: items, Err: err}
	}
}

// handleSearchResults applies a completion unless a newer search was issued
// or the box was cleared since.
func (a *App) handleSearchResults(msg common.SearchResultsMsg) {
	if msg.Seq != a.searchSeq {
		a.logger.Debug("dropping stale search result", "query", msg.Query, "seq", msg.Seq, "latest", a.searchSeq)
		return
	}

	if msg.Err != nil {
		a.logger.Warn("search failed", "query", msg.Query, "error", msg.Err)
		a.results.Clear()
		a.setStatus(searchFailedStatus(msg.Err), true)
		return
	}

	a.results.SetItems(msg.Items, a.cfg.TMDB.ImageBase)
	a.setStatus(resultCountStatus(len(msg.Items)), false)
}

// clearResults empties the list and status and invalidates in-flight searches
func (a *App) clearResults() {
	a.searchSeq++
	a.results.Clear()
	a.setStatus("", false)
}

func resultCountStatus(n int) string {
	switch n {
	case 0:
		return statusNoResults
	case 1:
		return "Found 1 result"
	default:
		return fmt.Sprintf("Found %d results", n)
	}
}

func searchFailedStatus(err error) string {
	var remote *tmdb.RemoteError
	msg := err.Error()
	if errors.As(err, &remote) {
		msg = remote.Message
	}
	return fmt.Sprintf("Search failed: %s. Check your API Key (ctrl+s).", msg)
}
