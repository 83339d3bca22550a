package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/styles"
	"github.com/justchokingaround/vidstream/internal/tui/utils"
)

// linesPerCard is title + meta + two synopsis lines + spacing
const linesPerCard = 5

// Model is the result list. The cursor moves over the filtered view while
// selections always report the index into the full list.
type Model struct {
	items        []media.Item
	cards        []media.Card
	currentIndex int
	fuzzySearch  *common.FuzzySearch
	width        int
	height       int
}

func New() Model {
	return Model{fuzzySearch: common.NewFuzzySearch()}
}

// SetItems replaces the list wholesale and resets cursor and filter
func (m *Model) SetItems(items []media.Item, imageBase string) {
	m.items = items
	m.cards = media.RenderCards(items, imageBase)
	m.currentIndex = 0
	m.fuzzySearch.Deactivate()
}

// Clear empties the list
func (m *Model) Clear() {
	m.SetItems(nil, "")
}

// Items returns the full result list
func (m Model) Items() []media.Item {
	return m.items
}

// Cards returns the rendered cards in result order
func (m Model) Cards() []media.Card {
	return m.cards
}

// Len is the number of results, ignoring the filter
func (m Model) Len() int {
	return len(m.items)
}

// SelectedIndex returns the full-list index under the cursor
func (m Model) SelectedIndex() (int, bool) {
	visible := m.filteredIndices()
	if m.currentIndex < 0 || m.currentIndex >= len(visible) {
		return 0, false
	}
	return visible[m.currentIndex], true
}

// IsFiltering reports whether the filter input owns the keyboard
func (m Model) IsFiltering() bool {
	return m.fuzzySearch.IsActive()
}

// SetSize records the space available for the list
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.fuzzySearch.SetWidth(width)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "ctrl+p":
		if m.currentIndex > 0 {
			m.currentIndex--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.currentIndex < len(m.filteredIndices())-1 {
			m.currentIndex++
		}
		return m, nil
	case "pgup":
		m.currentIndex = max(0, m.currentIndex-m.pageSize())
		return m, nil
	case "pgdown":
		m.currentIndex = max(0, min(len(m.filteredIndices())-1, m.currentIndex+m.pageSize()))
		return m, nil
	case "enter":
		index, ok := m.SelectedIndex()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return common.SelectMsg{Index: index}
		}
	case "ctrl+f":
		if len(m.items) == 0 {
			return m, nil
		}
		m.currentIndex = 0
		return m, m.fuzzySearch.Activate()
	case "esc":
		if m.fuzzySearch.IsActive() {
			m.fuzzySearch.Deactivate()
			m.currentIndex = 0
		}
		return m, nil
	}

	if !m.fuzzySearch.IsActive() {
		return m, nil
	}
	cmd := m.fuzzySearch.Update(keyMsg)
	m.currentIndex = 0
	return m, cmd
}

func (m Model) View() string {
	if len(m.cards) == 0 {
		return ""
	}

	var content strings.Builder

	visible := m.filteredIndices()
	count := styles.SubtitleStyle.Render(fmt.Sprintf("%d found", len(visible)))
	if m.fuzzySearch.Query() != "" {
		count += styles.MetadataStyle.Render(fmt.Sprintf(" (filtered from %d)", len(m.cards)))
	}
	content.WriteString(count + "\n")
	if m.fuzzySearch.IsActive() {
		content.WriteString(m.fuzzySearch.View() + "\n")
	}
	content.WriteString("\n")

	start, end := m.visibleRange(len(visible))
	for i := start; i < end; i++ {
		idx := visible[i]
		content.WriteString(m.renderCard(m.cards[idx], m.items[idx], i == m.currentIndex))
		content.WriteString("\n\n")
	}

	return strings.TrimRight(content.String(), "\n")
}

func (m Model) renderCard(card media.Card, item media.Item, selected bool) string {
	boxStyle := styles.CardStyle
	titleStyle := styles.CardTitleStyle
	if selected {
		boxStyle = styles.CardSelectedStyle
		titleStyle = titleStyle.Foreground(styles.OxocarbonPurple)
	}

	width := m.textWidth()
	lines := []string{titleStyle.Render(utils.TruncateWithWidth(card.Title, width))}

	meta := styles.KindBadgeStyle.Render(card.KindLabel)
	if card.Year != "" {
		meta += styles.MetadataStyle.Render(card.Year)
	}
	if card.HasRating() {
		meta += styles.RatingStyle.Render("  ★ " + card.Rating)
	}
	lines = append(lines, meta)

	synopsis := utils.TruncateToLines(item.OverviewText(), 2, width)
	lines = append(lines, styles.SynopsisStyle.Render(synopsis))

	if selected {
		lines = append(lines, styles.URLStyle.Render(utils.TruncateWithWidth(card.PosterURL, width)))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) filteredIndices() []int {
	titles := make([]string, len(m.cards))
	for i, card := range m.cards {
		titles[i] = card.Title
	}
	return m.fuzzySearch.Filter(titles)
}

func (m Model) textWidth() int {
	width := m.width - 10
	if width < 30 {
		width = 30
	}
	if width > 100 {
		width = 100
	}
	return width
}

func (m Model) pageSize() int {
	if m.height <= 0 {
		return 3
	}
	return max(1, m.height/linesPerCard)
}

// visibleRange keeps the cursor roughly centered
func (m Model) visibleRange(total int) (int, int) {
	maxVisible := m.pageSize()
	if total <= maxVisible {
		return 0, total
	}

	start := max(0, m.currentIndex-maxVisible/2)
	end := start + maxVisible
	if end > total {
		end = total
		start = max(0, end-maxVisible)
	}
	return start, end
}
