package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/export262/internal/exporter"
)

// WriteText writes the export manifest as human-readable styled text
// to the writer. Output uses lipgloss for color and formatting when
// the output is a TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, m *exporter.Manifest) error {
	s := DefaultStyles()

	fmt.Fprintln(w, s.Header.Render("=== export ==="))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    %s", m.SourceDir)))
	fmt.Fprintln(w, s.SubHeader.Render(fmt.Sprintf("    -> %s", m.OutDir)))

	if len(m.Files) == 0 {
		fmt.Fprintln(w, s.Muted.Render("    Nothing to export."))
		return nil
	}

	fmt.Fprintln(w)

	// File table using lipgloss/table.
	// Budget: 80 cols total. Borders take ~4, padding 6 for 3
	// columns. ACTION=9, FILE=42, DETAIL=19.
	const maxPath = 42
	rows := make([][]string, 0, len(m.Files))
	for _, f := range m.Files {
		path := f.Path
		if len(path) > maxPath {
			path = "..." + path[len(path)-maxPath+3:]
		}
		rows = append(rows, []string{
			string(f.Action),
			path,
			fileDetail(f, s),
		})
	}

	t := table.New().
		Width(76). // Leave 4 chars for left indent.
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 0 && row >= 0 && row < len(rows) {
				return s.ActionStyle(rows[row][0])
			}
			return s.TableCell
		}).
		Headers("ACTION", "FILE", "DETAIL").
		Rows(rows...)

	fmt.Fprintln(w, t)

	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d converted, %d copied, %d skipped; %d call(s) rewritten, %d removed",
		m.Summary.Converted, m.Summary.Copied, m.Summary.Skipped,
		m.Summary.Rewritten, m.Summary.Removed)))

	return nil
}

// fileDetail renders the per-file annotation column.
func fileDetail(f exporter.FileResult, s Styles) string {
	var parts []string

	if f.Rewritten > 0 {
		parts = append(parts, fmt.Sprintf("%d rewritten", f.Rewritten))
	}
	if f.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", f.Removed))
	}
	if f.NegativeType != "" {
		parts = append(parts, s.Negative.Render("negative:"+f.NegativeType))
	}
	if f.Module {
		parts = append(parts, "module")
	}
	if len(f.Features) > 0 {
		parts = append(parts, strings.Join(f.Features, ","))
	}

	return strings.Join(parts, " ")
}
