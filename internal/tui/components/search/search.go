package search

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/styles"
)

// DebounceMsg fires when the debounce window of the change tagged Tag ends
type DebounceMsg struct {
	Tag   int
	Query string
}

// Model is the as-you-type search box. Every edit of the input bumps the
// tag; only the tick carrying the latest tag starts a search.
type Model struct {
	textInput textinput.Model
	debounce  time.Duration
	tag       int
	value     string
	query     string
	width     int
}

// New creates a focused search box
func New(debounce time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Search movies and TV shows..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = styles.HelpStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	return Model{
		textInput: ti,
		debounce:  debounce,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width > 20 {
			m.textInput.Width = m.width - 20
		}
		return m, nil

	case DebounceMsg:
		if msg.Tag != m.tag {
			return m, nil
		}
		query := msg.Query
		return m, func() tea.Msg {
			return common.PerformSearchMsg{Query: query}
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, tea.Batch(cmd, m.onQueryChanged())
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// onQueryChanged restarts the debounce window on every edit of the input,
// whitespace included. An empty query only cancels the pending tick.
func (m *Model) onQueryChanged() tea.Cmd {
	value := m.textInput.Value()
	if value == m.value {
		return nil
	}

	query := strings.TrimSpace(value)
	m.value = value
	m.query = query
	m.tag++
	if query == "" {
		return nil
	}

	tag := m.tag
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Tag: tag, Query: query}
	})
}

func (m Model) View() string {
	return styles.SearchBoxStyle.Render(m.textInput.View())
}

// Query returns the trimmed query
func (m Model) Query() string {
	return m.query
}

// Tag returns the tag of the latest change
func (m Model) Tag() int {
	return m.tag
}

// SetValue replaces the input text without scheduling a search
func (m *Model) SetValue(value string) {
	m.textInput.SetValue(value)
	m.value = value
	m.query = strings.TrimSpace(value)
	m.tag++
}

// CancelPending drops any scheduled search
func (m *Model) CancelPending() {
	m.tag++
}

// SetDebounce changes the quiet period used for later keystrokes
func (m *Model) SetDebounce(d time.Duration) {
	m.debounce = d
}

// Focus gives the input the cursor back
func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

// Blur hides the cursor while an overlay owns the keyboard
func (m *Model) Blur() {
	m.textInput.Blur()
}
