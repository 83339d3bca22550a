package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/justchokingaround/vidstream/internal/config"
	"github.com/justchokingaround/vidstream/internal/credential"
	"github.com/justchokingaround/vidstream/internal/database"
	"github.com/justchokingaround/vidstream/internal/history"
	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/providers/tmdb"
	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/components/search"
)

const embedBase = "https://embed.test"

type fakeCatalog struct {
	mu      sync.Mutex
	queries []string
	items   []media.Item
	err     error
}

func (f *fakeCatalog) SearchMulti(_ context.Context, _ string, query string) ([]media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.items, f.err
}

func (f *fakeCatalog) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeClipboard struct {
	copied string
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	f.copied = text
	return nil
}

type testApp struct {
	*App
	db        *gorm.DB
	store     *credential.SettingsStore
	clipboard *fakeClipboard
	opened    []string
}

func newTestApp(t *testing.T, apiKey string, catalog Catalog) *testApp {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := credential.NewSettingsStore(db)
	if apiKey != "" {
		require.NoError(t, store.Set(context.Background(), apiKey))
	}

	cfg := config.Default()
	cfg.Embed.BaseURL = embedBase

	ta := &testApp{db: db, store: store, clipboard: &fakeClipboard{}}
	ta.App = NewApp(context.Background(), Options{
		Config:      cfg,
		Catalog:     catalog,
		Credentials: store,
		DB:          db,
		Clipboard:   ta.clipboard,
		OpenURL: func(url string) error {
			ta.opened = append(ta.opened, url)
			return nil
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return ta
}

func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.Update(msg)
	return cmd
}

func (ta *testApp) typeText(text string) {
	for _, r := range text {
		ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (ta *testApp) press(k tea.KeyType) tea.Cmd {
	return ta.send(tea.KeyMsg{Type: k})
}

// fireDebounce delivers the tick of the latest keystroke and returns the
// command that runs the search
func (ta *testApp) fireDebounce(t *testing.T) tea.Cmd {
	t.Helper()
	cmd := ta.send(search.DebounceMsg{Tag: ta.search.Tag(), Query: ta.search.Query()})
	require.NotNil(t, cmd)
	perform, ok := cmd().(common.PerformSearchMsg)
	require.True(t, ok)
	return ta.send(perform)
}

// complete runs a search command and feeds its result back
func (ta *testApp) complete(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(common.SearchResultsMsg)
	require.True(t, ok)
	ta.send(msg)
}

var batman = media.Item{ID: 100, Kind: media.KindMovie, Title: "Batman", ReleaseDate: "2022-03-01", Rating: 7.8, PosterPath: "/x.jpg"}
var thrones = media.Item{ID: 1399, Kind: media.KindSeries, Title: "Game of Thrones", ReleaseDate: "2011-04-17", Rating: 8.4, PosterPath: "/g.jpg"}

func TestInitOpensSettingsWithoutKey(t *testing.T) {
	ta := newTestApp(t, "", &fakeCatalog{})
	ta.Init()
	assert.True(t, ta.settings.IsOpen())

	ta = newTestApp(t, "key", &fakeCatalog{})
	ta.Init()
	assert.False(t, ta.settings.IsOpen())
}

func TestSearchScenarioAgainstCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "batman", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results":[
			{"id":100,"media_type":"movie","title":"Batman","poster_path":"/x.jpg","release_date":"2022-03-01","vote_average":7.8},
			{"id":7,"media_type":"person","name":"Someone","poster_path":"/p.jpg"}
		]}`))
	}))
	defer server.Close()

	catalog := tmdb.NewClient(config.TMDBConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, false, nil)
	ta := newTestApp(t, "key", catalog)

	ta.typeText("batman")
	assert.Equal(t, statusSearching, ta.statusMsg)
	ta.complete(t, ta.fireDebounce(t))

	cards := ta.results.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Batman", cards[0].Title)
	assert.Equal(t, "2022", cards[0].Year)
	assert.Equal(t, "7.8", cards[0].Rating)
	assert.Equal(t, "Found 1 result", ta.statusMsg)

	cmd := ta.press(tea.KeyEnter)
	require.NotNil(t, cmd)
	ta.send(cmd())
	require.True(t, ta.player.IsOpen())
	assert.True(t, ta.player.IsLoading())

	sel, ok := ta.playback.Current()
	require.True(t, ok)
	ta.send(common.EmbedReadyMsg{Token: sel.Token})
	assert.Equal(t, embedBase+"/movie?tmdb=100", ta.player.EmbedURL())
}

func TestSearchScenarioInvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer server.Close()

	catalog := tmdb.NewClient(config.TMDBConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, false, nil)
	ta := newTestApp(t, "bad", catalog)
	ta.results.SetItems([]media.Item{batman}, "")

	ta.typeText("batman")
	ta.complete(t, ta.fireDebounce(t))

	assert.Contains(t, ta.statusMsg, "Invalid API key")
	assert.Equal(t, "Search failed: Invalid API key. Check your API Key (ctrl+s).", ta.statusMsg)
	assert.True(t, ta.statusIsError)
	assert.Equal(t, 0, ta.results.Len())
}

func TestResultCountStatus(t *testing.T) {
	assert.Equal(t, "No results found", resultCountStatus(0))
	assert.Equal(t, "Found 1 result", resultCountStatus(1))
	assert.Equal(t, "Found 12 results", resultCountStatus(12))
}

func TestNetworkFailureStatus(t *testing.T) {
	err := &tmdb.NetworkError{Err: errors.New("connection refused")}
	assert.Equal(t, "Search failed: network error: connection refused. Check your API Key (ctrl+s).", searchFailedStatus(err))
}

func TestUnreachableCatalogKeepsKeyOutOfStatusAndLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	catalog := tmdb.NewClient(config.TMDBConfig{BaseURL: addr, Timeout: 5 * time.Second}, false, nil)
	ta := newTestApp(t, "SECRETKEY123", catalog)
	var logs bytes.Buffer
	ta.logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ta.typeText("batman")
	ta.complete(t, ta.fireDebounce(t))

	assert.True(t, ta.statusIsError)
	assert.Contains(t, ta.statusMsg, "Search failed: network error")
	assert.NotContains(t, ta.statusMsg, "SECRETKEY123")
	assert.Contains(t, logs.String(), "search failed")
	assert.NotContains(t, logs.String(), "SECRETKEY123")
}

func TestOnlyLastKeystrokeSearches(t *testing.T) {
	catalog := &fakeCatalog{items: []media.Item{batman}}
	ta := newTestApp(t, "key", catalog)

	ta.typeText("bat")
	staleTag := ta.search.Tag()
	ta.typeText("man")

	assert.Nil(t, ta.send(search.DebounceMsg{Tag: staleTag, Query: "bat"}))
	ta.complete(t, ta.fireDebounce(t))

	assert.Equal(t, []string{"batman"}, catalog.calls())
}

func TestStaleSearchResultIsDropped(t *testing.T) {
	catalog := &fakeCatalog{}
	ta := newTestApp(t, "key", catalog)

	first := ta.send(common.PerformSearchMsg{Query: "bat"})
	second := ta.send(common.PerformSearchMsg{Query: "batman"})

	catalog.items = []media.Item{batman, thrones}
	ta.complete(t, second)
	require.Equal(t, 2, ta.results.Len())

	catalog.items = []media.Item{thrones}
	ta.complete(t, first)
	assert.Equal(t, 2, ta.results.Len())
	assert.Equal(t, "Found 2 results", ta.statusMsg)
}

func TestClearingQueryClearsSynchronously(t *testing.T) {
	catalog := &fakeCatalog{items: []media.Item{batman}}
	ta := newTestApp(t, "key", catalog)

	ta.typeText("bat")
	ta.complete(t, ta.fireDebounce(t))
	require.Equal(t, 1, ta.results.Len())

	ta.typeText("s")
	pendingTag := ta.search.Tag()
	inFlight := ta.send(common.PerformSearchMsg{Query: "bats"})

	for i := 0; i < 4; i++ {
		ta.press(tea.KeyBackspace)
	}
	assert.Equal(t, 0, ta.results.Len())
	assert.Empty(t, ta.statusMsg)

	assert.Nil(t, ta.send(search.DebounceMsg{Tag: pendingTag, Query: "bats"}))
	ta.complete(t, inFlight)
	assert.Equal(t, 0, ta.results.Len())
	assert.Empty(t, ta.statusMsg)
}

func TestSearchWithoutKeyDoesNotCallCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	ta := newTestApp(t, "", catalog)

	cmd := ta.send(common.PerformSearchMsg{Query: "batman"})
	assert.Nil(t, cmd)
	assert.Equal(t, statusNoKey, ta.statusMsg)
	assert.Empty(t, catalog.calls())
}

func TestSaveEmptyCredentialIsRejected(t *testing.T) {
	ta := newTestApp(t, "original", &fakeCatalog{})
	ta.press(tea.KeyCtrlS)
	require.True(t, ta.settings.IsOpen())

	cmd := ta.send(common.SaveCredentialMsg{Key: "   "})
	assert.Nil(t, cmd)
	assert.Equal(t, statusKeyInvalid, ta.statusMsg)
	assert.True(t, ta.settings.IsOpen())

	key, err := ta.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "original", key)
}

func TestSaveCredentialTriggersOneSearch(t *testing.T) {
	catalog := &fakeCatalog{items: []media.Item{batman}}
	ta := newTestApp(t, "", catalog)
	ta.Init()

	// typing goes to the search box once the overlay is closed
	ta.press(tea.KeyEsc)
	ta.typeText("batman")
	pendingTag := ta.search.Tag()

	ta.press(tea.KeyCtrlS)
	cmd := ta.send(common.SaveCredentialMsg{Key: " newkey "})
	assert.False(t, ta.settings.IsOpen())
	ta.complete(t, cmd)

	// the debounce tick scheduled before saving no longer fires
	assert.Nil(t, ta.send(search.DebounceMsg{Tag: pendingTag, Query: "batman"}))
	assert.Equal(t, []string{"batman"}, catalog.calls())
	assert.Equal(t, "Found 1 result", ta.statusMsg)

	key, _ := ta.store.Get(context.Background())
	assert.Equal(t, "newkey", key)
}

func TestSaveCredentialWithoutQuery(t *testing.T) {
	catalog := &fakeCatalog{}
	ta := newTestApp(t, "", catalog)

	ta.send(common.SaveCredentialMsg{Key: "newkey"})
	assert.Equal(t, statusKeySaved, ta.statusMsg)
	assert.Empty(t, catalog.calls())
}

func TestSelectOutOfRangeIsNoop(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman}, "")

	assert.Nil(t, ta.send(common.SelectMsg{Index: 5}))
	assert.Nil(t, ta.send(common.SelectMsg{Index: -1}))
	assert.False(t, ta.player.IsOpen())
	_, ok := ta.playback.Current()
	assert.False(t, ok)
}

func TestSeriesEpisodeChangeAndStaleLoad(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman, thrones}, "")

	ta.send(common.SelectMsg{Index: 1})
	require.True(t, ta.player.ShowsEpisodeInputs())
	first, _ := ta.playback.Current()

	ta.send(common.ChangeEpisodeMsg{Season: "2", Episode: "5"})
	second, _ := ta.playback.Current()
	assert.True(t, ta.player.IsLoading())

	// the first load was superseded before its delay ran out
	ta.send(common.EmbedReadyMsg{Token: first.Token})
	assert.True(t, ta.player.IsLoading())

	ta.send(common.EmbedReadyMsg{Token: second.Token})
	assert.Equal(t, embedBase+"/tv?tmdb=1399&season=2&episode=5", ta.player.EmbedURL())

	ta.send(common.ChangeEpisodeMsg{Season: "x", Episode: "-4"})
	third, _ := ta.playback.Current()
	ta.send(common.EmbedReadyMsg{Token: third.Token})
	assert.Equal(t, embedBase+"/tv?tmdb=1399&season=1&episode=1", ta.player.EmbedURL())

	played, err := history.NewService(ta.db).GetHistory(history.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, played, 2)
	assert.Equal(t, 1399, played[0].MediaID)
	assert.Equal(t, 1, played[0].Season)
}

func TestReselectIgnoresOldLoad(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman, thrones}, "")

	ta.send(common.SelectMsg{Index: 0})
	old, _ := ta.playback.Current()
	ta.press(tea.KeyEsc)
	ta.send(common.SelectMsg{Index: 1})
	current, _ := ta.playback.Current()

	ta.send(common.EmbedReadyMsg{Token: old.Token})
	assert.True(t, ta.player.IsLoading())

	ta.send(common.EmbedReadyMsg{Token: current.Token})
	assert.Equal(t, embedBase+"/tv?tmdb=1399&season=1&episode=1", ta.player.EmbedURL())
}

func TestVideoOverlayCapturesKeys(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman}, "")
	ta.send(common.SelectMsg{Index: 0})

	ta.typeText("xyz")
	assert.Empty(t, ta.search.Query())
}

func TestEscClosesBothOverlays(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman}, "")

	ta.send(common.SelectMsg{Index: 0})
	sel, _ := ta.playback.Current()
	ta.send(common.EmbedReadyMsg{Token: sel.Token})
	ta.press(tea.KeyCtrlS)
	require.True(t, ta.player.IsOpen())
	require.True(t, ta.settings.IsOpen())

	ta.press(tea.KeyEsc)
	assert.False(t, ta.player.IsOpen())
	assert.False(t, ta.settings.IsOpen())
	assert.Empty(t, ta.player.EmbedURL())
	_, ok := ta.playback.Current()
	assert.False(t, ok)

	// a late tick for the closed selection does nothing
	ta.send(common.EmbedReadyMsg{Token: sel.Token})
	assert.Empty(t, ta.player.EmbedURL())
}

func TestOpenAndCopyEmbed(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.results.SetItems([]media.Item{batman}, "")
	ta.send(common.SelectMsg{Index: 0})
	sel, _ := ta.playback.Current()
	ta.send(common.EmbedReadyMsg{Token: sel.Token})

	cmd := ta.send(common.OpenEmbedMsg{})
	require.NotNil(t, cmd)
	ta.send(cmd())
	assert.Equal(t, []string{embedBase + "/movie?tmdb=100"}, ta.opened)
	assert.Equal(t, "Opened player in browser", ta.statusMsg)

	cmd = ta.send(common.CopyEmbedMsg{})
	require.NotNil(t, cmd)
	ta.send(cmd())
	assert.Equal(t, embedBase+"/movie?tmdb=100", ta.clipboard.copied)
}

func TestConfigReloadChangesEmbedBase(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	cfg := config.Default()
	cfg.Embed.BaseURL = "https://other.test"
	ta.send(ReloadMsg(cfg))

	ta.results.SetItems([]media.Item{batman}, "")
	ta.send(common.SelectMsg{Index: 0})
	sel, _ := ta.playback.Current()
	ta.send(common.EmbedReadyMsg{Token: sel.Token})
	assert.Equal(t, "https://other.test/movie?tmdb=100", ta.player.EmbedURL())
}

func TestViewRendersStatusAndResults(t *testing.T) {
	ta := newTestApp(t, "key", &fakeCatalog{})
	ta.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	ta.results.SetItems([]media.Item{batman}, "https://img")
	ta.setStatus("Found 1 result", false)

	view := ta.View()
	assert.Contains(t, view, "VIDSTREAM")
	assert.Contains(t, view, "Found 1 result")
	assert.Contains(t, view, "Batman")
}
