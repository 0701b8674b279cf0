// Package styles holds the lipgloss palette and styles of the city finder.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette. Names follow what the colour marks on screen.
type Theme struct {
	Accent lipgloss.Color // titles, cursor background
	Route  lipgloss.Color // distances and section headers
	Text   lipgloss.Color
	Dim    lipgloss.Color // hints, empty lists, overflow counts
	Pin    lipgloss.Color // background of the selected city
	Frame  lipgloss.Color // input border
	Bar    lipgloss.Color // status bar background
	Warn   lipgloss.Color // loading
	Alert  lipgloss.Color // errors
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent: lipgloss.Color("#2E86AB"),
		Route:  lipgloss.Color("#F6AE2D"),
		Text:   lipgloss.Color("#E0E6ED"),
		Dim:    lipgloss.Color("#7A8595"),
		Pin:    lipgloss.Color("#3D4A5C"),
		Frame:  lipgloss.Color("#4F5B6B"),
		Bar:    lipgloss.Color("#1B222C"),
		Warn:   lipgloss.Color("#F2DC5D"),
		Alert:  lipgloss.Color("#E4572E"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Cursor     lipgloss.Style
	Highlight  lipgloss.Style // selected city
	Distance   lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	text := lipgloss.NewStyle().Foreground(theme.Text)
	dim := lipgloss.NewStyle().Foreground(theme.Dim)

	return &Styles{
		theme:     theme,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle:  lipgloss.NewStyle().Bold(true).Foreground(theme.Route),
		Normal:    text,
		Muted:     dim,
		Cursor:    text.Background(theme.Accent),
		Highlight: text.Bold(true).Background(theme.Pin),
		Distance:  lipgloss.NewStyle().Foreground(theme.Route),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warn),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(theme.Alert),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: dim.Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
