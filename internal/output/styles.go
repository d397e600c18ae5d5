package output

import "github.com/charmbracelet/lipgloss"

// ANSI palette indexes.
const (
	ansiGray   = lipgloss.Color("8")
	ansiRed    = lipgloss.Color("9")
	ansiGreen  = lipgloss.Color("10")
	ansiYellow = lipgloss.Color("11")
	ansiBlue   = lipgloss.Color("12")
	ansiCyan   = lipgloss.Color("14")
)

// Styles holds the lipgloss styles applied when color is enabled.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Color
}

// DefaultStyles returns the color styles used on a terminal.
func DefaultStyles() Styles {
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(ansiRed).Bold(true),
		Success: lipgloss.NewStyle().Foreground(ansiGreen),
		Warning: lipgloss.NewStyle().Foreground(ansiYellow),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(ansiGray),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ansiBlue),
		Key:     lipgloss.NewStyle().Foreground(ansiCyan),
		Border:  ansiGray,
	}
}
