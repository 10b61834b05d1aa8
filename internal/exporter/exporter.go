// Package exporter walks a jstest source tree and writes the
// Test262-compliant export: harness support files are skipped,
// non-test files are copied verbatim, and .js tests are converted
// through the header-strip and assertion-rewrite pipeline.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unbound-force/export262/internal/config"
	"github.com/unbound-force/export262/internal/convert"
)

// Action records what the export did with one file.
type Action string

// Per-file export outcomes.
const (
	ActionConverted Action = "converted"
	ActionCopied    Action = "copied"
	ActionSkipped   Action = "skipped"
)

// ErrOutputInsideSource is returned when the output directory lies
// inside the source tree; the walk would otherwise consume its own
// output.
var ErrOutputInsideSource = errors.New("output directory is inside the source tree")

// Logger is the minimal logging surface the exporter needs. It is
// satisfied by *log.Logger from charmbracelet/log.
type Logger interface {
	Info(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}

// Options configures an export run.
type Options struct {
	// Config provides support-file and include/exclude filtering.
	// Nil means config.DefaultConfig().
	Config *config.Config

	// Frontmatter forwards to the per-file conversion.
	Frontmatter bool

	// Logger receives per-file progress. Nil disables progress
	// logging.
	Logger Logger
}

// FileResult is one file's entry in the export manifest.
type FileResult struct {
	// Path is the file path relative to the source root.
	Path string `json:"path"`

	// Action is what the export did with the file.
	Action Action `json:"action"`

	// Rewritten and Removed count assertion substitutions for
	// converted files.
	Rewritten int `json:"rewritten,omitempty"`
	Removed   int `json:"removed,omitempty"`

	// HadHeader is set when a reftest header was stripped.
	HadHeader bool `json:"had_header,omitempty"`

	// Features lists harness feature dependencies captured from
	// the header.
	Features []string `json:"features,omitempty"`

	// NegativeType names the expected error for negative tests.
	NegativeType string `json:"negative_type,omitempty"`

	// Module is set when the header carried the module flag.
	Module bool `json:"module,omitempty"`
}

// Summary aggregates the manifest.
type Summary struct {
	Converted int `json:"converted"`
	Copied    int `json:"copied"`
	Skipped   int `json:"skipped"`
	Rewritten int `json:"rewritten"`
	Removed   int `json:"removed"`
}

// Manifest is the full record of an export run.
type Manifest struct {
	SourceDir string       `json:"source_dir"`
	OutDir    string       `json:"out_dir"`
	Files     []FileResult `json:"files"`
	Summary   Summary      `json:"summary"`
}

// Export walks the tree rooted at srcDir and writes the exported
// tree to outDir, which is recreated from scratch. It returns the
// manifest of everything it did.
//
// If opts.Config sets a walk timeout, the walk is bounded by that
// deadline and a context.DeadlineExceeded error is returned when it
// is hit.
func Export(srcDir, outDir string, opts Options) (*Manifest, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source dir: %w", err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output dir: %w", err)
	}

	if absOut == absSrc || strings.HasPrefix(absOut, absSrc+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s in %s", ErrOutputInsideSource, absOut, absSrc)
	}

	if info, err := os.Stat(absSrc); err != nil {
		return nil, fmt.Errorf("source dir: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", absSrc)
	}

	// Recreate the output directory from scratch.
	if err := os.RemoveAll(absOut); err != nil {
		return nil, fmt.Errorf("clearing output dir: %w", err)
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	// Derive a context with timeout if configured.
	ctx := context.Background()
	timeout := cfg.Export.WalkTimeout.Std()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	manifest := &Manifest{SourceDir: absSrc, OutDir: absOut}

	err = filepath.WalkDir(absSrc, func(path string, d fs.DirEntry, walkErr error) error {
		// Check for context cancellation on every entry.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("export timed out after %s: %w", timeout, ctxErr)
		}

		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(absSrc, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			// Hidden directories (like .hg or .git) stay behind.
			base := d.Name()
			if strings.HasPrefix(base, ".") && base != "." {
				return filepath.SkipDir
			}
			// Mirror the directory so empty-but-included dirs exist
			// in the output.
			if rel != "." {
				return os.MkdirAll(filepath.Join(absOut, rel), 0o755)
			}
			return nil
		}

		res, fileErr := exportFile(path, rel, absOut, cfg, opts)
		if fileErr != nil {
			return fileErr
		}

		manifest.Files = append(manifest.Files, res)
		manifest.Summary.add(res)

		if opts.Logger != nil {
			switch res.Action {
			case ActionConverted:
				opts.Logger.Info("converted", "file", rel,
					"rewritten", res.Rewritten, "removed", res.Removed)
			case ActionCopied:
				opts.Logger.Info("copied", "file", rel)
			default:
				opts.Logger.Debug("skipped", "file", rel)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return manifest, nil
}

// exportFile handles a single regular file and returns its manifest
// entry.
func exportFile(path, rel, outDir string, cfg *config.Config, opts Options) (FileResult, error) {
	name := filepath.Base(rel)

	if cfg.IsSupportFile(name) || !config.Filter(rel, cfg) {
		return FileResult{Path: rel, Action: ActionSkipped}, nil
	}

	outPath := filepath.Join(outDir, rel)

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", rel, err)
	}

	// Non-test files are copied as is.
	if filepath.Ext(name) != ".js" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return FileResult{}, fmt.Errorf("copying %s: %w", rel, err)
		}
		return FileResult{Path: rel, Action: ActionCopied}, nil
	}

	res, err := convert.File(string(data), convert.Options{Frontmatter: opts.Frontmatter})
	if err != nil {
		return FileResult{}, fmt.Errorf("converting %s: %w", rel, err)
	}

	if err := os.WriteFile(outPath, []byte(res.Source), 0o644); err != nil {
		return FileResult{}, fmt.Errorf("writing %s: %w", rel, err)
	}

	fr := FileResult{
		Path:      rel,
		Action:    ActionConverted,
		Rewritten: res.Stats.Rewritten,
		Removed:   res.Stats.Removed,
	}
	if res.Header != nil {
		fr.HadHeader = true
		fr.Features = res.Header.Features
		fr.NegativeType = res.Header.Error
		fr.Module = res.Header.Module
	}
	return fr, nil
}

func (s *Summary) add(r FileResult) {
	switch r.Action {
	case ActionConverted:
		s.Converted++
	case ActionCopied:
		s.Copied++
	case ActionSkipped:
		s.Skipped++
	}
	s.Rewritten += r.Rewritten
	s.Removed += r.Removed
}
