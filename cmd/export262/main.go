package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/export262/internal/config"
	"github.com/unbound-force/export262/internal/convert"
	"github.com/unbound-force/export262/internal/exporter"
	"github.com/unbound-force/export262/internal/report"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "export262",
		Short: "Export jstest files to match Test262 file compliance",
		Long: `export262 converts a SpiderMonkey jstest tree into Test262-compliant
test files: harness support files are dropped, |reftest| manifest
headers are stripped, and legacy reportCompare assertions become
assert.sameValue calls. Everything else is preserved byte for byte.`,
		Version: version,
	}

	root.AddCommand(newExportCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newSchemaCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exportParams holds the parsed flags for the export command.
type exportParams struct {
	srcDir      string
	outDir      string
	format      string
	configPath  string
	frontmatter bool
	interactive bool
	quiet       bool
	stdout      io.Writer
	stderr      io.Writer
}

// runExport is the extracted, testable body of the export command.
func runExport(p exportParams) error {
	if p.format != "text" && p.format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", p.format)
	}

	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}

	opts := exporter.Options{
		Config:      cfg,
		Frontmatter: p.frontmatter,
	}
	if !p.quiet {
		opts.Logger = logger
	}

	logger.Info("exporting tree", "src", p.srcDir, "out", p.outDir)
	manifest, err := exporter.Export(p.srcDir, p.outDir, opts)
	if err != nil {
		return err
	}

	logger.Info("export complete",
		"converted", manifest.Summary.Converted,
		"copied", manifest.Summary.Copied,
		"skipped", manifest.Summary.Skipped)

	if p.interactive {
		return runInteractiveExport(manifest)
	}

	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, manifest, version)
	default:
		return report.WriteText(p.stdout, manifest)
	}
}

// loadConfig resolves the effective config: an explicit --config path
// must exist; otherwise .export262.yaml is used when present, and the
// built-in defaults when not.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		return config.Load(config.DefaultConfigFile)
	}
	return config.DefaultConfig(), nil
}

func newExportCmd() *cobra.Command {
	var (
		out         string
		format      string
		configPath  string
		frontmatter bool
		interactive bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "export [source-dir]",
		Short: "Export a jstest tree to a Test262-compliant tree",
		Long: `Walk a jstest source tree and write the exported Test262 tree.
The output directory is recreated from scratch: any existing
directory is removed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(exportParams{
				srcDir:      args[0],
				outDir:      out,
				format:      format,
				configPath:  configPath,
				frontmatter: frontmatter,
				interactive: interactive,
				quiet:       quiet,
				stdout:      os.Stdout,
				stderr:      os.Stderr,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "test262/export",
		"output directory (any existing directory will be removed)")
	cmd.Flags().StringVar(&format, "format", "text",
		"manifest output format: text or json")
	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: "+config.DefaultConfigFile+" if present)")
	cmd.Flags().BoolVar(&frontmatter, "frontmatter", false,
		"generate Test262 frontmatter blocks from reftest headers")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing the export manifest")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress per-file progress logging")

	return cmd
}

// convertParams holds the parsed flags for the convert command.
type convertParams struct {
	path        string
	write       bool
	frontmatter bool
	stdout      io.Writer
}

// runConvert is the extracted, testable body of the convert command.
func runConvert(p convertParams) error {
	if filepath.Ext(p.path) != ".js" {
		return fmt.Errorf("%s is not a .js test file", p.path)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.path, err)
	}

	res, err := convert.File(string(data), convert.Options{Frontmatter: p.frontmatter})
	if err != nil {
		return fmt.Errorf("converting %s: %w", p.path, err)
	}

	logger.Info("converted", "file", p.path,
		"rewritten", res.Stats.Rewritten, "removed", res.Stats.Removed)

	if p.write {
		return os.WriteFile(p.path, []byte(res.Source), 0o644)
	}

	_, err = io.WriteString(p.stdout, res.Source)
	return err
}

func newConvertCmd() *cobra.Command {
	var (
		write       bool
		frontmatter bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file.js]",
		Short: "Convert a single jstest file",
		Long: `Convert one jstest file to Test262 form and print the result to
stdout, or rewrite the file in place with -w.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(convertParams{
				path:        args[0],
				write:       write,
				frontmatter: frontmatter,
				stdout:      os.Stdout,
			})
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false,
		"rewrite the file in place instead of printing to stdout")
	cmd.Flags().BoolVar(&frontmatter, "frontmatter", false,
		"generate a Test262 frontmatter block from the reftest header")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the export manifest",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of export262 export --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
