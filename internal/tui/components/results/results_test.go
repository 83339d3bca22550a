package results

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/tui/common"
)

var testItems = []media.Item{
	{ID: 100, Kind: media.KindMovie, Title: "Batman", ReleaseDate: "2022-03-01", Rating: 7.8, PosterPath: "/x.jpg"},
	{ID: 200, Kind: media.KindSeries, Title: "Superman & Lois", ReleaseDate: "2021-02-23", PosterPath: "/s.jpg"},
	{ID: 300, Kind: media.KindMovie, Title: "The Batman", ReleaseDate: "2022-03-04", Rating: 7.7, PosterPath: "/b.jpg"},
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectEmitsIndex(t *testing.T) {
	m := New()
	m.SetItems(testItems, "https://img")

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, common.SelectMsg{Index: 2}, cmd())
}

func TestFilterKeepsOriginalIndex(t *testing.T) {
	m := New()
	m.SetItems(testItems, "https://img")

	m, _ = m.Update(key("ctrl+f"))
	require.True(t, m.IsFiltering())
	for _, r := range "super" {
		m, _ = m.Update(key(string(r)))
	}

	index, ok := m.SelectedIndex()
	require.True(t, ok)
	assert.Equal(t, 1, index)

	m, _ = m.Update(key("esc"))
	assert.False(t, m.IsFiltering())
	index, _ = m.SelectedIndex()
	assert.Equal(t, 0, index)
}

func TestEmptyList(t *testing.T) {
	m := New()
	assert.Empty(t, m.View())

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)

	m.SetItems(testItems, "https://img")
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.View())
}

func TestViewShowsCards(t *testing.T) {
	m := New()
	m.SetSize(100, 40)
	m.SetItems(testItems[:2], "https://img")

	view := m.View()
	assert.Contains(t, view, "2 found")
	assert.Contains(t, view, "Batman")
	assert.Contains(t, view, "★ 7.8")
	assert.Contains(t, view, "TV Show")
	assert.Contains(t, view, "https://img/x.jpg")
	assert.Contains(t, view, media.NoOverview)
}
