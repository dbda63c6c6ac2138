package styles

import "github.com/charmbracelet/lipgloss"

// GitHub terminal light theme palette.
var (
	ColorFg      = lipgloss.Color("#24292f")
	ColorMuted   = lipgloss.Color("#656d76")
	ColorAccent  = lipgloss.Color("#0969da")
	ColorError   = lipgloss.Color("#cf222e")
	ColorSuccess = lipgloss.Color("#1a7f37")
	ColorWarning = lipgloss.Color("#9a6700")
	ColorMagenta = lipgloss.Color("#8250df")
)

// Centralized style definitions for the TUI.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// Spinner / animation styles.
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorMagenta)
	LoadingStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	// General utility styles.
	DimStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	HelpKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFg)

	// Result pane.
	ResultBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorAccent)

	// Failure report styles.
	ErrorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	ErrorBlockStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ColorError)
)

// Bullet prefixes remediation items.
const Bullet = "• "
