package exporter_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unbound-force/export262/internal/config"
	"github.com/unbound-force/export262/internal/exporter"
)

// writeTree lays out a small jstest-style tree under a temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readOut(t *testing.T, outDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading exported %s: %v", rel, err)
	}
	return string(data)
}

func TestExport_Tree(t *testing.T) {
	src := writeTree(t, map[string]string{
		"shell.js":          "// harness\n",
		"browser.js":        "// harness\n",
		"README.txt":        "test collection\n",
		"Number/basic.js":   "reportCompare(4, 2+2);\nreportCompare(0, 0);\n",
		"Number/shell.js":   "// nested harness\n",
		"Intl/fallback.js":  "// |reftest| skip-if(!this.hasOwnProperty('Intl'))\nreportCompare(a, b);\n",
		"String/literal.js": "var s = 'x';\n",
	})
	out := filepath.Join(t.TempDir(), "export")

	m, err := exporter.Export(src, out, exporter.Options{})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	// Harness files skipped at any depth.
	for _, rel := range []string{"shell.js", "browser.js", "Number/shell.js"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); !os.IsNotExist(err) {
			t.Errorf("support file %s was exported", rel)
		}
	}

	// Non-.js files copied verbatim.
	if got := readOut(t, out, "README.txt"); got != "test collection\n" {
		t.Errorf("README.txt = %q", got)
	}

	// Tests converted.
	if got := readOut(t, out, "Number/basic.js"); got != "assert.sameValue(4, 2+2);\n\n" {
		t.Errorf("Number/basic.js = %q", got)
	}
	if got := readOut(t, out, "Intl/fallback.js"); got != "assert.sameValue(a, b);\n" {
		t.Errorf("Intl/fallback.js = %q", got)
	}

	// Files with nothing to rewrite still pass through conversion.
	if got := readOut(t, out, "String/literal.js"); got != "var s = 'x';\n" {
		t.Errorf("String/literal.js = %q", got)
	}

	if m.Summary.Converted != 3 || m.Summary.Copied != 1 || m.Summary.Skipped != 3 {
		t.Errorf("Summary = %+v", m.Summary)
	}
	if m.Summary.Rewritten != 2 || m.Summary.Removed != 1 {
		t.Errorf("Summary counts = %+v", m.Summary)
	}
}

func TestExport_ManifestMetadata(t *testing.T) {
	src := writeTree(t, map[string]string{
		"neg.js": "// |reftest| error:SyntaxError module -- bad syntax\nlet a =;\n",
	})
	out := filepath.Join(t.TempDir(), "export")

	m, err := exporter.Export(src, out, exporter.Options{})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if len(m.Files) != 1 {
		t.Fatalf("Files = %v, want one entry", m.Files)
	}
	f := m.Files[0]
	if !f.HadHeader || f.NegativeType != "SyntaxError" || !f.Module {
		t.Errorf("FileResult = %+v", f)
	}
}

func TestExport_FrontmatterOption(t *testing.T) {
	src := writeTree(t, map[string]string{
		"neg.js": "// |reftest| error:SyntaxError\nlet a =;\n",
	})
	out := filepath.Join(t.TempDir(), "export")

	_, err := exporter.Export(src, out, exporter.Options{Frontmatter: true})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	got := readOut(t, out, "neg.js")
	if !strings.HasPrefix(got, "/*---\n") {
		t.Errorf("expected frontmatter block:\n%s", got)
	}
	if !strings.Contains(got, "phase: parse") || !strings.Contains(got, "type: SyntaxError") {
		t.Errorf("frontmatter missing negative entry:\n%s", got)
	}
}

func TestExport_RecreatesOutputDir(t *testing.T) {
	src := writeTree(t, map[string]string{"a.js": "reportCompare(1, 2);\n"})

	out := filepath.Join(t.TempDir(), "export")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(out, "stale.js")
	if err := os.WriteFile(stale, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := exporter.Export(src, out, exporter.Options{}); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived output dir recreation")
	}
}

func TestExport_OutputInsideSourceRejected(t *testing.T) {
	src := writeTree(t, map[string]string{"a.js": "reportCompare(1, 2);\n"})

	_, err := exporter.Export(src, filepath.Join(src, "export"), exporter.Options{})
	if !errors.Is(err, exporter.ErrOutputInsideSource) {
		t.Fatalf("err = %v, want ErrOutputInsideSource", err)
	}
}

func TestExport_MissingSource(t *testing.T) {
	_, err := exporter.Export(filepath.Join(t.TempDir(), "nope"), t.TempDir(), exporter.Options{})
	if err == nil {
		t.Fatal("expected error for missing source dir")
	}
}

func TestExport_WalkTimeout(t *testing.T) {
	src := writeTree(t, map[string]string{"a.js": "reportCompare(1, 2);\n"})

	cfg := config.DefaultConfig()
	cfg.Export.WalkTimeout = config.Duration(time.Nanosecond)

	_, err := exporter.Export(src, filepath.Join(t.TempDir(), "export"), exporter.Options{Config: cfg})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestExport_WalkTimeoutGenerous(t *testing.T) {
	src := writeTree(t, map[string]string{"a.js": "reportCompare(1, 2);\n"})

	cfg := config.DefaultConfig()
	cfg.Export.WalkTimeout = config.Duration(time.Minute)

	m, err := exporter.Export(src, filepath.Join(t.TempDir(), "export"), exporter.Options{Config: cfg})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if m.Summary.Converted != 1 {
		t.Errorf("Summary = %+v", m.Summary)
	}
}

func TestExport_IncludeFilter(t *testing.T) {
	src := writeTree(t, map[string]string{
		"Intl/a.js": "reportCompare(a, b);\n",
		"Date/b.js": "reportCompare(a, b);\n",
	})
	out := filepath.Join(t.TempDir(), "export")

	cfg := config.DefaultConfig()
	cfg.Export.Include = []string{"Intl/**"}

	m, err := exporter.Export(src, out, exporter.Options{Config: cfg})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "Intl", "a.js")); err != nil {
		t.Errorf("included file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "Date", "b.js")); !os.IsNotExist(err) {
		t.Error("excluded file was exported")
	}
	if m.Summary.Converted != 1 || m.Summary.Skipped != 1 {
		t.Errorf("Summary = %+v", m.Summary)
	}
}
