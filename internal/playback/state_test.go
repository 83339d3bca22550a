package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/vidstream/internal/media"
)

var testItems = []media.Item{
	{ID: 100, Kind: media.KindMovie, Title: "Batman", ReleaseDate: "2022-03-01", Rating: 7.8, PosterPath: "/x.jpg"},
	{ID: 1399, Kind: media.KindSeries, Title: "Game of Thrones", ReleaseDate: "2011-04-17", Rating: 8.4, PosterPath: "/g.jpg", Overview: "Houses."},
}

func TestSelect(t *testing.T) {
	s := NewState()

	sel, ok := s.Select(testItems, 0)
	require.True(t, ok)
	assert.Equal(t, 100, sel.ItemID)
	assert.Equal(t, media.KindMovie, sel.Kind)
	assert.Equal(t, "2022", sel.YearLabel)
	assert.Equal(t, "7.8", sel.RatingLabel)
	assert.Equal(t, media.NoOverview, sel.Overview)
	assert.Equal(t, 1, sel.Season)
	assert.Equal(t, 1, sel.Episode)
	assert.Equal(t, "2022 • ★ 7.8", sel.MetaLine())

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, sel, current)
}

func TestSelectOutOfRange(t *testing.T) {
	s := NewState()
	first, _ := s.Select(testItems, 0)

	for _, index := range []int{-1, 2, 42} {
		_, ok := s.Select(testItems, index)
		assert.False(t, ok, "index %d", index)
	}

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, first, current)

	_, ok = NewState().Select(nil, 0)
	assert.False(t, ok)
}

func TestChangeEpisode(t *testing.T) {
	s := NewState()
	first, _ := s.Select(testItems, 1)

	sel, ok := s.ChangeEpisode("3", "7")
	require.True(t, ok)
	assert.Equal(t, 3, sel.Season)
	assert.Equal(t, 7, sel.Episode)
	assert.NotEqual(t, first.Token, sel.Token)
	assert.False(t, s.IsCurrent(first.Token))
	assert.True(t, s.IsCurrent(sel.Token))

	sel, ok = s.ChangeEpisode("abc", "")
	require.True(t, ok)
	assert.Equal(t, 1, sel.Season)
	assert.Equal(t, 1, sel.Episode)
}

func TestChangeEpisodeWithoutSeries(t *testing.T) {
	s := NewState()
	_, ok := s.ChangeEpisode("2", "2")
	assert.False(t, ok)

	movie, _ := s.Select(testItems, 0)
	_, ok = s.ChangeEpisode("2", "2")
	assert.False(t, ok)
	assert.True(t, s.IsCurrent(movie.Token))
}

func TestClose(t *testing.T) {
	s := NewState()
	sel, _ := s.Select(testItems, 1)
	s.Close()

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.IsCurrent(sel.Token))

	_, ok = s.ChangeEpisode("2", "2")
	assert.False(t, ok)
}

func TestParsePositive(t *testing.T) {
	tests := map[string]int{
		"1":    1,
		"12":   12,
		" 4 ":  4,
		"0":    1,
		"-3":   1,
		"abc":  1,
		"":     1,
		"2.5":  1,
		"9999": 9999,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePositive(in), "input %q", in)
	}
}
