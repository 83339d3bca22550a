package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"gorm.io/gorm"

	"github.com/justchokingaround/vidstream/internal/clipboard"
	"github.com/justchokingaround/vidstream/internal/config"
	"github.com/justchokingaround/vidstream/internal/credential"
	"github.com/justchokingaround/vidstream/internal/history"
	"github.com/justchokingaround/vidstream/internal/media"
	"github.com/justchokingaround/vidstream/internal/playback"
	"github.com/justchokingaround/vidstream/internal/providers/embed"
	"github.com/justchokingaround/vidstream/internal/tui/common"
	"github.com/justchokingaround/vidstream/internal/tui/components/help"
	"github.com/justchokingaround/vidstream/internal/tui/components/player"
	"github.com/justchokingaround/vidstream/internal/tui/components/results"
	"github.com/justchokingaround/vidstream/internal/tui/components/search"
	"github.com/justchokingaround/vidstream/internal/tui/components/settings"
	"github.com/justchokingaround/vidstream/internal/tui/styles"
)

// Catalog searches for playable titles
type Catalog interface {
	SearchMulti(ctx context.Context, apiKey, query string) ([]media.Item, error)
}

// Options wires the App to its collaborators
type Options struct {
	Config      *config.Config
	Catalog     Catalog
	Credentials credential.Store
	// DB records playback history; nil disables it
	DB        *gorm.DB
	Clipboard clipboard.Service
	// OpenURL defaults to the system browser
	OpenURL func(string) error
	Logger  *slog.Logger
}

// App is the top level model. It owns every piece of UI state; the two
// overlays are toggled independently and may be open at the same time.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	width  int
	height int

	catalog      Catalog
	credentials  credential.Store
	resolver     embed.Resolver
	playback     *playback.State
	history      *history.Service
	clipboardSvc clipboard.Service
	openURL      func(string) error

	search   search.Model
	results  results.Model
	player   player.Model
	settings settings.Model
	help     help.Model

	// searchSeq is the sequence number of the latest issued search
	searchSeq uint64
	loadDelay time.Duration

	statusMsg     string
	statusIsError bool
}

// NewApp builds the App from opts
func NewApp(ctx context.Context, opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}
	clipboardSvc := opts.Clipboard
	if clipboardSvc == nil {
		clipboardSvc = clipboard.NewService(cfg.Advanced.Clipboard, logger)
	}

	var historySvc *history.Service
	if opts.DB != nil {
		historySvc = history.NewService(opts.DB)
	}

	return &App{
		ctx:          ctx,
		cfg:          cfg,
		logger:       logger,
		catalog:      opts.Catalog,
		credentials:  opts.Credentials,
		resolver:     embed.NewResolver(cfg.Embed.BaseURL),
		playback:     playback.NewState(),
		history:      historySvc,
		clipboardSvc: clipboardSvc,
		openURL:      openURL,
		search:       search.New(cfg.Search.Debounce),
		results:      results.New(),
		player:       player.New(),
		settings:     settings.New(),
		help:         help.New(),
		loadDelay:    cfg.Embed.LoadDelay,
	}
}

// Init opens the settings overlay right away when no API key is stored
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.search.Init()}

	key, err := a.credentials.Get(a.ctx)
	if err != nil {
		a.logger.Error("failed to read API key", "error", err)
	}
	if key == "" {
		cmds = append(cmds, a.openSettings())
	}

	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search, _ = a.search.Update(msg)
		// header, search box, status and help take about ten lines
		a.results.SetSize(msg.Width, msg.Height-10)
		a.player.SetSize(msg.Width, msg.Height)
		a.settings.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.player, cmd = a.player.Update(msg)
		return a, cmd

	case search.DebounceMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd

	case common.PerformSearchMsg:
		return a, a.startSearch(msg.Query)

	case common.SearchResultsMsg:
		a.handleSearchResults(msg)
		return a, nil

	case common.SelectMsg:
		return a, a.selectItem(msg.Index)

	case common.ChangeEpisodeMsg:
		return a, a.changeEpisode(msg)

	case common.EmbedReadyMsg:
		a.installEmbed(msg.Token)
		return a, nil

	case common.OpenEmbedMsg:
		return a, a.openEmbed()

	case common.CopyEmbedMsg:
		return a, a.copyEmbed()

	case common.ExternalActionMsg:
		a.handleExternalAction(msg)
		return a, nil

	case common.SaveCredentialMsg:
		return a, a.saveCredential(msg.Key)

	case common.CloseOverlaysMsg:
		return a, a.closeOverlays()

	case common.ConfigReloadedMsg:
		a.applyConfig(msg)
		return a, nil
	}

	return a, nil
}

func (a *App) View() string {
	switch {
	case a.help.IsVisible():
		return a.help.View()
	case a.settings.IsOpen():
		// settings renders above the video overlay when both are open
		return a.settings.View()
	case a.player.IsOpen():
		return a.player.View()
	}

	var b strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TitleStyle.Render("  VIDSTREAM  "),
		"  ",
		styles.SubtitleStyle.Render("Movies & TV"),
	)
	b.WriteString(header + "\n\n")
	b.WriteString(a.search.View() + "\n")
	if a.statusMsg != "" {
		b.WriteString(styles.StatusStyle(a.statusIsError).Render(a.statusMsg))
	}
	b.WriteString("\n\n")

	if list := a.results.View(); list != "" {
		b.WriteString(list + "\n\n")
	}

	a.help.SetContext(a.helpContext())
	b.WriteString(a.help.ShortHelp())

	return styles.AppStyle.Render(b.String())
}

func (a *App) helpContext() help.HelpContext {
	switch {
	case a.settings.IsOpen():
		return help.SettingsContext
	case a.player.IsOpen():
		return help.VideoContext
	case a.results.IsFiltering():
		return help.FilterContext
	default:
		return help.BrowseContext
	}
}

func (a *App) setStatus(msg string, isError bool) {
	a.statusMsg = msg
	a.statusIsError = isError
}
