// Package tui renders the transaction form in the terminal with bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Primary   = lipgloss.Color("#1E3D58")
	Accent    = lipgloss.Color("#00A8E8")
	LightText = lipgloss.Color("#FFFFFF")
	Border    = lipgloss.Color("#C5CED8")
	Danger    = lipgloss.Color("#E53935")
	Disabled  = lipgloss.Color("#999999")
	TabIdle   = lipgloss.Color("#DDDDDD")
	TabText   = lipgloss.Color("#444444")
	Muted     = lipgloss.Color("#888888")
)

// Styles holds every style the form and app views use.
type Styles struct {
	Card           lipgloss.Style
	Title          lipgloss.Style
	Balance        lipgloss.Style
	Tab            lipgloss.Style
	ActiveTab      lipgloss.Style
	Input          lipgloss.Style
	InputError     lipgloss.Style
	ErrorText      lipgloss.Style
	Button         lipgloss.Style
	DisabledButton lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
}

// DefaultStyles returns the standard look.
func DefaultStyles() Styles {
	tab := lipgloss.NewStyle().
		Padding(0, 3).
		MarginRight(1).
		Background(TabIdle).
		Foreground(TabText).
		Bold(true)

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1).
		Width(28)

	button := lipgloss.NewStyle().
		Padding(0, 4).
		MarginTop(1).
		Background(Accent).
		Foreground(LightText).
		Bold(true)

	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2),
		Title:          lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Balance:        lipgloss.NewStyle().Foreground(Muted).MarginBottom(1),
		Tab:            tab,
		ActiveTab:      tab.Background(Primary).Foreground(LightText),
		Input:          input,
		InputError:     input.BorderForeground(Danger),
		ErrorText:      lipgloss.NewStyle().Foreground(Danger).MarginTop(1),
		Button:         button,
		DisabledButton: button.Background(Disabled),
		Status:         lipgloss.NewStyle().Foreground(Accent),
		StatusError:    lipgloss.NewStyle().Foreground(Danger),
	}
}
