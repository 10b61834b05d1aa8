package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for section headers.
	Header lipgloss.Style

	// SubHeader is used for secondary information lines.
	SubHeader lipgloss.Style

	// Converted, Copied, and Skipped color-code file actions.
	Converted lipgloss.Style
	Copied    lipgloss.Style
	Skipped   lipgloss.Style

	// Negative highlights negative-test entries.
	Negative lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		SubHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Converted: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		Copied:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Negative:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),

		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// ActionStyle returns the appropriate style for a file action.
func (s Styles) ActionStyle(action string) lipgloss.Style {
	switch action {
	case "converted":
		return s.Converted
	case "copied":
		return s.Copied
	case "skipped":
		return s.Skipped
	default:
		return s.Muted
	}
}
