package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon color scheme - IBM Carbon inspired
// Following base16 oxocarbon-dark palette
var (
	OxocarbonBlack  = lipgloss.Color("#161616") // background
	OxocarbonBase00 = lipgloss.Color("#262626") // overlays
	OxocarbonBase01 = lipgloss.Color("#393939") // borders
	OxocarbonBase02 = lipgloss.Color("#525252")
	OxocarbonBase03 = lipgloss.Color("#767676") // muted
	OxocarbonBase04 = lipgloss.Color("#dde1e6")
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	OxocarbonTeal   = lipgloss.Color("#3ddbd9")
	OxocarbonBlue   = lipgloss.Color("#78a9ff")
	OxocarbonPink   = lipgloss.Color("#ee5396")
	OxocarbonRed    = lipgloss.Color("#ff5252")
	OxocarbonCyan   = lipgloss.Color("#33b1ff")
	OxocarbonGreen  = lipgloss.Color("#42be65")
	OxocarbonPurple = lipgloss.Color("#be95ff") // main accent
	OxocarbonMauve  = lipgloss.Color("#d1aaff")
)

var (
	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Italic(true)

	// Search box with a thick accent bar on the left
	SearchBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(OxocarbonPurple).
			BorderLeft(true).
			PaddingLeft(2).
			PaddingRight(2).
			MarginLeft(1)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			MarginLeft(1)

	CardSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple).
				BorderLeft(true).
				PaddingLeft(2).
				MarginLeft(1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	RatingStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPink).
			Bold(true)

	KindBadgeStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1).
			MarginRight(1)

	URLStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Italic(true)

	SynopsisStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(OxocarbonGreen)

	// Status line at the bottom
	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	// Overlays (video player, settings, help)
	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonPurple).
			Padding(1, 2).
			Background(OxocarbonBase00).
			Foreground(OxocarbonBase05)

	InputLabelStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Width(9)

	FocusedInputLabelStyle = InputLabelStyle.
				Foreground(OxocarbonPurple).
				Bold(true)
)

// StatusStyle picks the footer color for a status line
func StatusStyle(isError bool) lipgloss.Style {
	if isError {
		return FooterStyle.Foreground(OxocarbonRed)
	}
	return FooterStyle
}
