package format

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/germanamz/mealplanner/cmd/mealplanner/internal/styles"
	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/mattn/go-runewidth"
)

// IsDarkBG is set once before bubbletea starts (in main.go) so that glamour
// never issues its own OSC 11 query while the program is running.
var IsDarkBG bool

// LoadingMessages are displayed while a plan is being generated.
var LoadingMessages = []string{
	"Creating your personalized meal plan...",
	"Chopping vegetables...",
	"Balancing the macros...",
	"Checking the pantry...",
	"Simmering ideas...",
	"Writing the grocery list...",
	"Tasting for seasoning...",
	"Plating up...",
}

var (
	mdRenderer      *glamour.TermRenderer
	mdRendererMu    sync.Mutex
	mdRendererWidth int
)

// InitMarkdownRenderer initializes the glamour renderer at the given width.
func InitMarkdownRenderer(width int) {
	if width <= 0 {
		width = 100
	}
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if width == mdRendererWidth && mdRenderer != nil {
		return
	}
	// glamour.WithAutoStyle() queries the terminal (OSC 11) and races with
	// bubbletea's input reader, so the style is fixed up front.
	style := glamourstyles.LightStyleConfig
	if IsDarkBG {
		style = glamourstyles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	mdRenderer = r
	mdRendererWidth = width
}

// RenderMarkdown converts markdown text to terminal-formatted output. The
// input is returned unchanged when no renderer is available.
func RenderMarkdown(text string) string {
	mdRendererMu.Lock()
	r := mdRenderer
	mdRendererMu.Unlock()
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// RenderReport formats a failure report as a bordered block.
func RenderReport(r failure.Report) string {
	var sb strings.Builder
	sb.WriteString(styles.ErrorTitleStyle.Render(r.Title))
	if r.Detail != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Detail)
	}
	for _, item := range r.Remediation {
		sb.WriteString("\n")
		sb.WriteString(styles.DimStyle.Render(styles.Bullet + item))
	}
	return styles.ErrorBlockStyle.Render(sb.String())
}

// Truncate shortens s to at most width terminal cells, appending "..." when
// cut. Newlines are replaced with spaces for single-line display.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "...")
}

// FmtTokens formats a token count for display, using k/M suffixes.
func FmtTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FmtDuration formats a duration for display.
func FmtDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, sec)
}

// RandomLoadingMessage returns a random loading message.
func RandomLoadingMessage() string {
	return LoadingMessages[rand.IntN(len(LoadingMessages))] //nolint:gosec // cosmetic randomness
}
