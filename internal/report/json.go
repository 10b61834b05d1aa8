// Package report provides output formatters for export manifests
// in JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/export262/internal/exporter"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version  string             `json:"version"`
	Manifest *exporter.Manifest `json:"manifest"`
}

// WriteJSON writes the export manifest as formatted JSON to the
// writer.
func WriteJSON(w io.Writer, m *exporter.Manifest, version string) error {
	if m == nil {
		m = &exporter.Manifest{}
	}
	if m.Files == nil {
		m.Files = []exporter.FileResult{}
	}
	report := JSONReport{
		Version:  version,
		Manifest: m,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
