// Package convert runs the per-file export pipeline: strip the
// jstest reftest header, rewrite reportCompare assertions, and
// optionally emit a Test262 frontmatter block.
package convert

import (
	"github.com/unbound-force/export262/internal/frontmatter"
	"github.com/unbound-force/export262/internal/reftest"
	"github.com/unbound-force/export262/internal/rewrite"
)

// Options configures a conversion.
type Options struct {
	// Frontmatter emits a generated Test262 metadata block for
	// files that carried a reftest header.
	Frontmatter bool
}

// Result is the outcome of converting one file.
type Result struct {
	// Source is the converted file content.
	Source string

	// Header is the parsed reftest header, nil when the file had
	// none.
	Header *reftest.Header

	// Stats counts the assertion rewrites applied.
	Stats rewrite.Stats
}

// File converts a single jstest source into Test262 form.
//
// The pipeline preserves everything it does not explicitly touch:
// apart from the removed header line, the substituted assertion
// calls, and the optional prepended frontmatter block, output is
// byte-identical to input.
func File(source string, opts Options) (Result, error) {
	stripped, header := reftest.Strip(source)
	rewritten, stats := rewrite.Source(stripped)

	out := rewritten
	if opts.Frontmatter && header != nil {
		meta := frontmatter.FromHeader(header)
		var err error
		out, err = meta.Insert(rewritten)
		if err != nil {
			return Result{}, err
		}
	}

	return Result{Source: out, Header: header, Stats: stats}, nil
}
