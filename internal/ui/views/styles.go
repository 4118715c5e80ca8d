package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	ProductName   lipgloss.Style
	Price         lipgloss.Style
	InStock       lipgloss.Style
	OutOfStock    lipgloss.Style
	Dim           lipgloss.Style
	Scan          lipgloss.Style
	Position      lipgloss.Style
	MainImage     lipgloss.Style
	Control       lipgloss.Style
	Thumbnail     lipgloss.Style
	ThumbSelected lipgloss.Style
	ScrollHint    lipgloss.Style
	Button        lipgloss.Style
	AdminButton   lipgloss.Style
	Description   lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	HelpBox       lipgloss.Style
	Main          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		ProductName: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Price:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		InStock:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		OutOfStock: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Dim:        lipgloss.NewStyle().Faint(true),
		Scan:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Position:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		MainImage: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Align(lipgloss.Center, lipgloss.Center),
		Control: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			Padding(0, 1),
		Thumbnail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Foreground(lipgloss.Color("245")).
			Align(lipgloss.Center),
		ThumbSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("226")).
			Foreground(lipgloss.Color("226")).
			Bold(true).
			Align(lipgloss.Center),
		ScrollHint: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("78")).
			Padding(0, 2),
		AdminButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 2),
		Description: lipgloss.NewStyle(),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
