// Package playback tracks which title is selected for playback and which
// season/episode of it is loaded.
package playback

import (
	"strconv"
	"strings"
	"sync"

	"github.com/justchokingaround/vidstream/internal/media"
)

// Selection is the title currently open in the video overlay
type Selection struct {
	ItemID      int
	Kind        media.Kind
	Title       string
	YearLabel   string
	RatingLabel string
	Overview    string
	Season      int
	Episode     int

	// Token identifies this exact load; it changes on every Select and
	// ChangeEpisode so a delayed embed can tell whether it is still wanted.
	Token uint64
}

// MetaLine is the "YEAR • ★ RATING" line shown under the title
func (s Selection) MetaLine() string {
	return s.YearLabel + " • ★ " + s.RatingLabel
}

// State holds at most one Selection
type State struct {
	mu        sync.Mutex
	current   *Selection
	lastToken uint64
}

// NewState creates an empty playback state
func NewState() *State {
	return &State{}
}

// Select opens items[index] at season 1 episode 1.
// An out of range index leaves the state unchanged.
func (s *State) Select(items []media.Item, index int) (Selection, bool) {
	if index < 0 || index >= len(items) {
		return Selection{}, false
	}

	item := items[index]

	s.mu.Lock()
	defer s.mu.Unlock()

	sel := Selection{
		ItemID:      item.ID,
		Kind:        item.Kind,
		Title:       item.Title,
		YearLabel:   item.YearLabel(),
		RatingLabel: item.RatingLabel(),
		Overview:    item.OverviewText(),
		Season:      1,
		Episode:     1,
		Token:       s.nextToken(),
	}
	s.current = &sel
	return sel, true
}

// ChangeEpisode applies the season/episode inputs to the active series.
// Anything that is not a positive integer becomes 1. Without an active
// series selection nothing happens.
func (s *State) ChangeEpisode(seasonText, episodeText string) (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.Kind.Episodic() {
		return Selection{}, false
	}

	s.current.Season = ParsePositive(seasonText)
	s.current.Episode = ParsePositive(episodeText)
	s.current.Token = s.nextToken()
	return *s.current, true
}

// Close discards the selection
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the active selection, if any
func (s *State) Current() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Selection{}, false
	}
	return *s.current, true
}

// IsCurrent reports whether token belongs to the active selection's latest load
func (s *State) IsCurrent(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Token == token
}

func (s *State) nextToken() uint64 {
	s.lastToken++
	return s.lastToken
}

// ParsePositive parses a season or episode number, falling back to 1
func ParsePositive(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
