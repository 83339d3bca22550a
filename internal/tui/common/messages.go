package common

import (
	"time"

	"github.com/justchokingaround/vidstream/internal/media"
)

// This file contains custom tea.Msg types for communication between components.

// PerformSearchMsg is emitted once the search box has been quiet for the
// debounce window.
type PerformSearchMsg struct {
	Query string
}

// SearchResultsMsg carries the completion of a catalog search.
// Seq is the sequence number the search was issued with.
type SearchResultsMsg struct {
	Seq   uint64
	Query string
	Items []media.Item
	Err   error
}

// SelectMsg is emitted when a result card is chosen.
// Index points into the unfiltered result list.
type SelectMsg struct {
	Index int
}

// ChangeEpisodeMsg carries the raw season/episode inputs of the player
type ChangeEpisodeMsg struct {
	Season  string
	Episode string
}

// EmbedReadyMsg fires after the load delay of the load identified by Token
type EmbedReadyMsg struct {
	Token uint64
}

// OpenEmbedMsg asks to open the installed embed in the browser
type OpenEmbedMsg struct{}

// CopyEmbedMsg asks to copy the installed embed address
type CopyEmbedMsg struct{}

// SaveCredentialMsg is emitted when the settings form is submitted
type SaveCredentialMsg struct {
	Key string
}

// CloseOverlaysMsg hides every overlay
type CloseOverlaysMsg struct{}

// ExternalActionMsg reports the outcome of a browser or clipboard action
type ExternalActionMsg struct {
	Action string
	Err    error
}

// ConfigReloadedMsg is sent when the config file changed on disk
type ConfigReloadedMsg struct {
	EmbedBase string
	Debounce  time.Duration
	LoadDelay time.Duration
}
