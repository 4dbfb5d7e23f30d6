package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Filter        lipgloss.Style
	FilterPrompt  lipgloss.Style
	Header        lipgloss.Style
	Rule          lipgloss.Style
	Name          lipgloss.Style
	Cell          lipgloss.Style
	Photo         lipgloss.Style
	PhotoHover    lipgloss.Style
	Empty         lipgloss.Style
	SelectionBg   lipgloss.Style
	Scroll        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	InfoBox       lipgloss.Style
	PreviewBox    lipgloss.Style
	ErrorBox      lipgloss.Style
	HelpBox       lipgloss.Style
	Section       lipgloss.Style
	Key           lipgloss.Style
	Value         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Filter:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		FilterPrompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		Rule:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Name:          lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Cell:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Photo:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		PhotoHover:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Underline(true),
		Empty:         lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		PreviewBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
