package common

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/vidstream/internal/tui/styles"
)

// FuzzySearch narrows an already loaded result list
type FuzzySearch struct {
	input  textinput.Model
	active bool
	query  string
}

// NewFuzzySearch creates an inactive filter
func NewFuzzySearch() *FuzzySearch {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.HelpStyle

	return &FuzzySearch{input: ti}
}

// Activate starts filtering with an empty query
func (f *FuzzySearch) Activate() tea.Cmd {
	f.active = true
	f.query = ""
	f.input.SetValue("")
	f.input.Focus()
	return textinput.Blink
}

// Deactivate stops filtering and forgets the query
func (f *FuzzySearch) Deactivate() {
	f.active = false
	f.query = ""
	f.input.SetValue("")
	f.input.Blur()
}

// IsActive reports whether the filter is shown
func (f *FuzzySearch) IsActive() bool {
	return f.active
}

// Query returns the current filter text
func (f *FuzzySearch) Query() string {
	return f.query
}

// Update feeds a key to the filter input while active
func (f *FuzzySearch) Update(msg tea.Msg) tea.Cmd {
	if !f.active {
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.query = f.input.Value()
	return cmd
}

// View renders the filter line, or nothing while inactive
func (f *FuzzySearch) View() string {
	if !f.active {
		return ""
	}
	label := styles.MetadataStyle.Render("Filter: ")
	hint := styles.HelpStyle.Render("  (esc to clear)")
	return label + f.input.View() + hint
}

// SetWidth sizes the filter input
func (f *FuzzySearch) SetWidth(width int) {
	if width > 20 {
		f.input.Width = width - 20
	}
}

// Filter returns the indices of candidates matching the query, best match
// first. Without a query every index is returned in order.
func (f *FuzzySearch) Filter(candidates []string) []int {
	if !f.active || f.query == "" {
		indices := make([]int, len(candidates))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(f.query, candidates)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}
