package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/export262/internal/exporter"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	convertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	copiedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// exportModel is the Bubble Tea model for browsing an export manifest.
type exportModel struct {
	manifest *exporter.Manifest
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newExportModel(m *exporter.Manifest) exportModel {
	h := help.New()
	content := renderExportContent(m)
	return exportModel{
		manifest: m,
		help:     h,
		keys:     defaultKeyMap,
		content:  content,
	}
}

func renderExportContent(m *exporter.Manifest) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("Export: %d converted, %d copied, %d skipped",
			m.Summary.Converted, m.Summary.Copied, m.Summary.Skipped)))
	sb.WriteString("\n\n")

	sb.WriteString(statusStyle.Render(fmt.Sprintf("    %s -> %s", m.SourceDir, m.OutDir)))
	sb.WriteString("\n\n")

	if len(m.Files) == 0 {
		sb.WriteString(statusStyle.Render("    Nothing was exported."))
		sb.WriteString("\n")
		return sb.String()
	}

	// Build file table.
	rows := make([][]string, 0, len(m.Files))
	for _, f := range m.Files {
		detail := ""
		if f.Rewritten > 0 || f.Removed > 0 {
			detail = fmt.Sprintf("%d rewritten, %d removed", f.Rewritten, f.Removed)
		}
		if f.NegativeType != "" {
			detail += " negative:" + f.NegativeType
		}
		path := f.Path
		if len(path) > 50 {
			path = "..." + path[len(path)-47:]
		}
		rows = append(rows, []string{
			string(f.Action),
			path,
			strings.TrimSpace(detail),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuiHeaderStyle
			}
			if col == 0 && row >= 0 && row < len(rows) {
				switch rows[row][0] {
				case string(exporter.ActionConverted):
					return convertedStyle
				case string(exporter.ActionCopied):
					return copiedStyle
				case string(exporter.ActionSkipped):
					return skippedStyle
				}
			}
			return lipgloss.NewStyle()
		}).
		Headers("ACTION", "FILE", "DETAIL").
		Rows(rows...)

	sb.WriteString(t.String())
	sb.WriteString("\n")

	return sb.String()
}

func (m exportModel) Init() tea.Cmd {
	return nil
}

func (m exportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 0
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m exportModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveExport launches the Bubble Tea TUI for browsing the
// export manifest.
func runInteractiveExport(m *exporter.Manifest) error {
	model := newExportModel(m)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
