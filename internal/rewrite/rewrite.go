// Package rewrite converts legacy jstest reportCompare assertions
// into their Test262 assert.sameValue equivalents while preserving
// all surrounding text byte for byte.
package rewrite

import (
	"regexp"
	"strings"
)

// callPattern matches a reportCompare call on a single line:
// two arguments, an optional third (message) argument, optional
// trailing semicolons, and any trailing text (usually an inline
// comment). Arguments are matched as non-whitespace runs, so
// expressions containing spaces are not matched and pass through
// unchanged; whitespace between arguments may span lines.
var callPattern = regexp.MustCompile(`(?m)reportCompare\(\s*(\S*)\s*,\s*(\S*)\s*(,\s*\S*)?\);* ?(.*)$`)

// Submatch group indices for callPattern.
const (
	groupActual   = 1
	groupExpected = 2
	groupTrailing = 4
)

// Stats summarizes what a Source call did.
type Stats struct {
	// Rewritten counts calls converted to assert.sameValue.
	Rewritten int `json:"rewritten"`

	// Removed counts no-op harness calls (reportCompare(true, true)
	// or reportCompare(0, 0)) that were deleted outright.
	Removed int `json:"removed"`
}

// Total returns the number of calls the rewrite touched.
func (s Stats) Total() int {
	return s.Rewritten + s.Removed
}

// Source rewrites every reportCompare call in source.
//
// Calls comparing true to true or 0 to 0 assert nothing about the
// test body; they exist only to signal harness completion and are
// removed entirely, keeping any trailing text on the line (so an
// inline comment survives, and a bare call leaves a blank line).
// All other calls become assert.sameValue with identical argument
// text. Nothing else in source changes: comments, blank lines,
// indentation, block structure, and a missing final newline all
// survive untouched.
func Source(source string) (string, Stats) {
	var stats Stats
	out := source

	for _, m := range callPattern.FindAllStringSubmatch(source, -1) {
		actual, expected := m[groupActual], m[groupExpected]

		if actual == expected && (actual == "true" || actual == "0") {
			out = strings.Replace(out, m[0], m[groupTrailing], 1)
			stats.Removed++
			continue
		}

		out = strings.Replace(out, "reportCompare(", "assert.sameValue(", 1)
		stats.Rewritten++
	}

	return out, stats
}

// ContainsCall reports whether source has at least one reportCompare
// call that Source would act on.
func ContainsCall(source string) bool {
	return callPattern.MatchString(source)
}
