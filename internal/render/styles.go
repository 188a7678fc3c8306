package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thywilljoshua/boardmate/internal/store"
)

// Palette follows the slate/sky scheme of the exported PDF.
var (
	sky      = lipgloss.Color("#0284c7")
	skyLight = lipgloss.Color("#38bdf8")
	slate800 = lipgloss.Color("#1e293b")
	slate500 = lipgloss.Color("#64748b")
	slate400 = lipgloss.Color("#94a3b8")
	slate100 = lipgloss.Color("#f1f5f9")
	red      = lipgloss.Color("#dc2626")
)

type styles struct {
	heading   lipgloss.Style
	section   lipgloss.Style
	muted     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	term      lipgloss.Style
	question  lipgloss.Style
	hint      lipgloss.Style
	errorText lipgloss.Style
}

func newStyles(theme store.Theme) styles {
	fg, accent, subtle := slate800, sky, slate500
	if theme.IsDark() {
		fg, accent, subtle = slate100, skyLight, slate400
	}
	return styles{
		heading:   lipgloss.NewStyle().Bold(true).Foreground(fg),
		section:   lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		muted:     lipgloss.NewStyle().Foreground(subtle),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(subtle),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accent).Underline(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginBottom(1),
		term:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		question:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		hint:      lipgloss.NewStyle().Italic(true).Foreground(subtle),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(red),
	}
}

// ErrorBanner renders a generation error the way the form shows it.
func (r *Renderer) ErrorBanner(msg string) string {
	return r.styles.errorText.Render("Error: ") + msg
}

// Muted renders secondary text such as key hints.
func (r *Renderer) Muted(s string) string {
	return r.styles.muted.Render(s)
}
