// Package styles holds the colour theme and shared lipgloss styles
// for the TUI. Views take a *Styles at construction so every panel
// renders from the same palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	// Primary is the main accent, used for titles and selection.
	Primary lipgloss.Color

	// Secondary is the supporting accent, used for subtitles and
	// provenance lines.
	Secondary lipgloss.Color

	// Background and Foreground are the base surface colours.
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Muted de-emphasises secondary text.
	Muted lipgloss.Color

	// Success, Warning, and Error colour status messages.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Border outlines input fields and panels.
	Border lipgloss.Color
}

// DefaultTheme is an amber-on-dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F59E0B"), // Amber
		Secondary:  lipgloss.Color("#2DD4BF"), // Teal
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles bundles the lipgloss styles the views render with.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected inverts the accent for the highlighted result row.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField wraps the query box in a rounded border.
	InputField lipgloss.Style

	// StatusBar renders the bottom bar on its own darker strip.
	StatusBar lipgloss.Style

	Help   lipgloss.Style
	Border lipgloss.Style
}

// NewStyles derives the full style set from a theme. A nil theme
// means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	base := lipgloss.NewStyle()
	bordered := base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    base.Bold(true).Foreground(theme.Primary),
		Subtitle: base.Bold(true).Foreground(theme.Secondary),
		Normal:   base.Foreground(theme.Foreground),
		Muted:    base.Foreground(theme.Muted),

		Selected: base.Bold(true).
			Foreground(theme.Background).
			Background(theme.Primary),

		Error:   base.Foreground(theme.Error),
		Success: base.Foreground(theme.Success),
		Warning: base.Foreground(theme.Warning),

		InputField: bordered.Padding(0, 1),

		StatusBar: base.
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: base.Foreground(theme.Muted),

		Border: bordered,
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
