package player

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/vidstream/internal/playback"
	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/styles"
	"github.com/justchokingaround/vidstream/internal/tui/utils"
)

// LoadingText is shown in place of the player until the embed is installed
const LoadingText = "Loading video..."

type focus int

const (
	focusNone focus = iota
	focusSeason
	focusEpisode
)

// Model is the video overlay. While open it receives every key.
type Model struct {
	open     bool
	sel      playback.Selection
	embedURL string

	spinner spinner.Model
	season  textinput.Model
	episode textinput.Model
	focus   focus

	width  int
	height int
}

func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	return Model{
		spinner: s,
		season:  newNumberInput(),
		episode: newNumberInput(),
	}
}

func newNumberInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4
	ti.Width = 5
	ti.SetValue("1")
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	return ti
}

// Show opens the overlay for sel with the placeholder and, for series,
// season and episode inputs reset to 1.
func (m *Model) Show(sel playback.Selection) tea.Cmd {
	m.open = true
	m.sel = sel
	m.embedURL = ""
	m.resetInputs()
	return m.spinner.Tick
}

// Reload puts the placeholder back for a new load of the same title
func (m *Model) Reload(sel playback.Selection) tea.Cmd {
	m.sel = sel
	m.embedURL = ""
	return m.spinner.Tick
}

// Install swaps the placeholder for the embed address
func (m *Model) Install(url string) {
	m.embedURL = url
}

// Hide closes the overlay and resets it to the loading placeholder
func (m *Model) Hide() {
	m.open = false
	m.sel = playback.Selection{}
	m.embedURL = ""
	m.resetInputs()
}

func (m *Model) resetInputs() {
	m.season.SetValue("1")
	m.episode.SetValue("1")
	m.setFocus(focusNone)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.season.Blur()
	m.episode.Blur()
	switch f {
	case focusSeason:
		m.season.Focus()
	case focusEpisode:
		m.episode.Focus()
	}
}

// IsOpen reports whether the overlay is shown
func (m Model) IsOpen() bool {
	return m.open
}

// IsLoading reports whether the placeholder is shown
func (m Model) IsLoading() bool {
	return m.open && m.embedURL == ""
}

// EmbedURL returns the installed embed address, "" while loading
func (m Model) EmbedURL() string {
	return m.embedURL
}

// ShowsEpisodeInputs reports whether season/episode inputs are visible
func (m Model) ShowsEpisodeInputs() bool {
	return m.open && m.sel.Kind.Episodic()
}

// Inputs returns the raw season and episode text
func (m Model) Inputs() (string, string) {
	return m.season.Value(), m.episode.Value()
}

// SetSize records the terminal size used to center the overlay
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	episodic := m.sel.Kind.Episodic()

	switch msg.String() {
	case "tab":
		if episodic {
			m.setFocus((m.focus + 1) % 3)
		}
		return m, nil
	case "shift+tab":
		if episodic {
			m.setFocus((m.focus + 2) % 3)
		}
		return m, nil
	case "enter":
		if !episodic {
			return m, nil
		}
		season, episode := m.Inputs()
		m.setFocus(focusNone)
		return m, func() tea.Msg {
			return common.ChangeEpisodeMsg{Season: season, Episode: episode}
		}
	}

	switch m.focus {
	case focusSeason:
		var cmd tea.Cmd
		m.season, cmd = m.season.Update(msg)
		return m, cmd
	case focusEpisode:
		var cmd tea.Cmd
		m.episode, cmd = m.episode.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "o":
		if m.embedURL != "" {
			return m, func() tea.Msg { return common.OpenEmbedMsg{} }
		}
	case "c":
		if m.embedURL != "" {
			return m, func() tea.Msg { return common.CopyEmbedMsg{} }
		}
	}
	// everything else is swallowed while the overlay is open
	return m, nil
}

func (m Model) View() string {
	if !m.open {
		return ""
	}

	width := 60
	if m.width > 0 && m.width-8 < width {
		width = max(30, m.width-8)
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(utils.TruncateWithWidth(m.sel.Title, width-2)))
	b.WriteString("\n")
	b.WriteString(styles.MetadataStyle.Render(m.sel.MetaLine()))
	b.WriteString("\n\n")
	b.WriteString(styles.SynopsisStyle.Render(utils.TruncateToLines(m.sel.Overview, 4, width)))
	b.WriteString("\n\n")

	if m.sel.Kind.Episodic() {
		b.WriteString(m.inputLine("Season", m.season, m.focus == focusSeason))
		b.WriteString("   ")
		b.WriteString(m.inputLine("Episode", m.episode, m.focus == focusEpisode))
		b.WriteString("\n\n")
	}

	if m.embedURL == "" {
		b.WriteString(m.spinner.View() + " " + styles.MetadataStyle.Render(LoadingText))
	} else {
		b.WriteString(styles.SuccessStyle.Render("▶ Ready"))
		b.WriteString("\n")
		b.WriteString(styles.URLStyle.Render(m.embedURL))
	}

	box := styles.PopupStyle.Width(width + 4).Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) inputLine(label string, input textinput.Model, focused bool) string {
	labelStyle := styles.InputLabelStyle
	if focused {
		labelStyle = styles.FocusedInputLabelStyle
	}
	return labelStyle.Render(label) + input.View()
}
