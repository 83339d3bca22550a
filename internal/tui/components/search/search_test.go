package search

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/vidstream/internal/tui/common"
)

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func backspace(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return m
}

func TestOnlyLatestTickSearches(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "ba")
	first := m.Tag()
	m = typeText(m, "t")
	require.Equal(t, "bat", m.Query())
	require.Greater(t, m.Tag(), first)

	_, cmd := m.Update(DebounceMsg{Tag: first, Query: "ba"})
	assert.Nil(t, cmd)

	_, cmd = m.Update(DebounceMsg{Tag: m.Tag(), Query: "bat"})
	require.NotNil(t, cmd)
	assert.Equal(t, common.PerformSearchMsg{Query: "bat"}, cmd())
}

func TestClearingCancelsPendingTick(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "bat")
	pending := m.Tag()

	m = backspace(m, 3)
	assert.Equal(t, "", m.Query())

	_, cmd := m.Update(DebounceMsg{Tag: pending, Query: "bat"})
	assert.Nil(t, cmd)
}

func TestWhitespaceEditRestartsDebounce(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "bat")
	pending := m.Tag()

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.NotNil(t, cmd)
	assert.Greater(t, m.Tag(), pending)
	assert.Equal(t, "bat", m.Query())

	_, cmd = m.Update(DebounceMsg{Tag: pending, Query: "bat"})
	assert.Nil(t, cmd)

	_, cmd = m.Update(DebounceMsg{Tag: m.Tag(), Query: "bat"})
	require.NotNil(t, cmd)
	assert.Equal(t, common.PerformSearchMsg{Query: "bat"}, cmd())
}

func TestCursorMoveKeepsTag(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "bat")
	tag := m.Tag()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tag, m.Tag())
}

func TestSetValueDoesNotSchedule(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "x")
	stale := m.Tag()

	m.SetValue("  dune ")
	assert.Equal(t, "dune", m.Query())

	_, cmd := m.Update(DebounceMsg{Tag: stale, Query: "x"})
	assert.Nil(t, cmd)
}

func TestCancelPending(t *testing.T) {
	m := New(500 * time.Millisecond)
	m = typeText(m, "dune")
	pending := m.Tag()

	m.CancelPending()
	_, cmd := m.Update(DebounceMsg{Tag: pending, Query: "dune"})
	assert.Nil(t, cmd)
	assert.Equal(t, "dune", m.Query())
}
