package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/styles"
)

// Model is the API key overlay
type Model struct {
	open   bool
	input  textinput.Model
	width  int
	height int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "TMDB API key"
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = styles.HelpStyle

	return Model{input: ti}
}

// Show opens the overlay with the field prefilled with current
func (m *Model) Show(current string) tea.Cmd {
	m.open = true
	m.input.SetValue(current)
	m.input.EchoMode = textinput.EchoPassword
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// Hide closes the overlay
func (m *Model) Hide() {
	m.open = false
	m.input.Blur()
}

// IsOpen reports whether the overlay is shown
func (m Model) IsOpen() bool {
	return m.open
}

// Value returns the raw field content
func (m Model) Value() string {
	return m.input.Value()
}

// SetSize records the terminal size used to center the overlay
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.open {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter":
		key := m.input.Value()
		return m, func() tea.Msg {
			return common.SaveCredentialMsg{Key: key}
		}
	case "ctrl+r":
		if m.input.EchoMode == textinput.EchoPassword {
			m.input.EchoMode = textinput.EchoNormal
		} else {
			m.input.EchoMode = textinput.EchoPassword
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m Model) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("SETTINGS"))
	b.WriteString("\n\n")
	b.WriteString(styles.MetadataStyle.Render("TMDB API key"))
	b.WriteString("\n")
	b.WriteString(styles.SearchBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Get a free key at themoviedb.org/settings/api"))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter save • ctrl+r reveal • esc close"))

	box := styles.PopupStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
