package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/vidstream/internal/tui/styles"
)

// HelpContext represents which view the help is being shown in
type HelpContext int

const (
	GlobalContext HelpContext = iota
	BrowseContext
	FilterContext
	VideoContext
	SettingsContext
)

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	Context     []HelpContext
}

var allShortcuts = []Shortcut{
	{Key: "esc", Description: "Close overlays", Context: []HelpContext{GlobalContext}},
	{Key: "ctrl+s", Description: "API key settings", Context: []HelpContext{GlobalContext}},
	{Key: "f1", Description: "Show/hide this help", Context: []HelpContext{GlobalContext}},
	{Key: "ctrl+c", Description: "Quit", Context: []HelpContext{GlobalContext}},

	{Key: "type", Description: "Search movies and TV shows", Context: []HelpContext{BrowseContext}},
	{Key: "↑/↓", Description: "Move between results", Context: []HelpContext{BrowseContext, FilterContext}},
	{Key: "enter", Description: "Play selected result", Context: []HelpContext{BrowseContext, FilterContext}},
	{Key: "ctrl+f", Description: "Filter loaded results", Context: []HelpContext{BrowseContext}},

	{Key: "type", Description: "Narrow the result list", Context: []HelpContext{FilterContext}},

	{Key: "tab", Description: "Focus season / episode", Context: []HelpContext{VideoContext}},
	{Key: "enter", Description: "Load season / episode", Context: []HelpContext{VideoContext}},
	{Key: "o", Description: "Open player in browser", Context: []HelpContext{VideoContext}},
	{Key: "c", Description: "Copy player address", Context: []HelpContext{VideoContext}},

	{Key: "enter", Description: "Save API key", Context: []HelpContext{SettingsContext}},
	{Key: "ctrl+r", Description: "Reveal / hide key", Context: []HelpContext{SettingsContext}},
}

// Model represents the help panel state
type Model struct {
	context HelpContext
	width   int
	height  int
	visible bool
}

// New creates a hidden help panel
func New() Model {
	return Model{context: BrowseContext}
}

// SetContext sets the current help context
func (m *Model) SetContext(ctx HelpContext) {
	m.context = ctx
}

// SetSize records the terminal size used to center the panel
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Toggle toggles the visibility of the help panel
func (m *Model) Toggle() {
	m.visible = !m.visible
}

// Hide hides the help panel
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible returns whether the help panel is visible
func (m Model) IsVisible() bool {
	return m.visible
}

// Shortcuts returns the global and context specific shortcuts
func (m Model) Shortcuts() []Shortcut {
	var relevant []Shortcut
	for _, sc := range allShortcuts {
		if sc.in(GlobalContext) || sc.in(m.context) {
			relevant = append(relevant, sc)
		}
	}
	return relevant
}

// ShortHelp is the one line hint shown under the current view
func (m Model) ShortHelp() string {
	var parts []string
	for _, sc := range allShortcuts {
		if sc.in(m.context) {
			parts = append(parts, sc.Key+" "+strings.ToLower(sc.Description))
		}
	}
	parts = append(parts, "f1 help")
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}

// View renders the help panel
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.OxocarbonPurple).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render("KEYBOARD SHORTCUTS"))
	content.WriteString("\n\n")
	for _, sc := range m.Shortcuts() {
		content.WriteString(keyStyle.Render(sc.Key) + descStyle.Render(sc.Description))
		content.WriteString("\n")
	}

	box := styles.PopupStyle.Render(strings.TrimRight(content.String(), "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (sc Shortcut) in(ctx HelpContext) bool {
	for _, c := range sc.Context {
		if c == ctx {
			return true
		}
	}
	return false
}
