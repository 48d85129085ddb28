package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
)

type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Path    lipgloss.Style
	Bold    lipgloss.Style
}

// newStyles binds the palette to a lipgloss renderer. Plain output gets an
// ASCII profile, so every style renders as bare text.
func newStyles(r *lipgloss.Renderer, plain bool) styles {
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		Title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		Path:    r.NewStyle().Foreground(PathColor).Italic(true),
		Bold:    r.NewStyle().Bold(true),
	}
}

// newTable copies the default pterm table. Plain tables carry empty styles
// so pterm's process-wide styling switch never reaches them.
func newTable(plain bool) pterm.TablePrinter {
	t := pterm.DefaultTable
	if plain {
		none := pterm.NewStyle()
		t.Style = none
		t.HeaderStyle = none
		t.HeaderRowSeparatorStyle = none
		t.SeparatorStyle = none
		t.RowSeparatorStyle = none
	}
	return t
}

func (s styles) ok() string   { return s.Success.Render("✓") }
func (s styles) fail() string { return s.Error.Render("✗") }
func (s styles) warn() string { return s.Warning.Render("!") }
