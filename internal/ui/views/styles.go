package views

import (
	"github.com/charmbracelet/lipgloss"

	"paintpick/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Dim           lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Button        lipgloss.Style
	ButtonOff     lipgloss.Style
	Loader        lipgloss.Style
	Card          lipgloss.Style
	CardHover     lipgloss.Style
	CardSelected  lipgloss.Style
	Broken        lipgloss.Style
	Section       lipgloss.Style
	Swatch        lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusDanger  lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1).
		Width(26).
		Height(3)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().Bold(true),
		Dim:   lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			Width(34),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1).
			Width(34),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Padding(0, 1),
		ButtonOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		Loader:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Card:         card,
		CardHover:    card.BorderForeground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
		CardSelected: card.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("33")),
		Broken:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		Swatch: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("252")),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
	}
}

// StatusStyle maps a status level to its style
func (s *Styles) StatusStyle(level domain.StatusLevel) lipgloss.Style {
	switch level {
	case domain.LevelSuccess:
		return s.StatusSuccess
	case domain.LevelWarning:
		return s.StatusWarning
	case domain.LevelDanger:
		return s.StatusDanger
	default:
		return s.StatusInfo
	}
}
