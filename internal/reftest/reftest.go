// Package reftest detects, parses, and strips the |reftest| manifest
// header that jstest files carry on their first line. The header is
// jstest harness metadata and must not appear in exported Test262
// files; its contents (skip conditions, expected errors, module flag,
// free-form comments) feed the export manifest and optional Test262
// frontmatter.
package reftest

import (
	"regexp"
	"strings"
)

// Header line forms:
//
//	// |reftest| skip-if(!this.hasOwnProperty('Intl')) -- needs Intl
//	/* |reftest| error:SyntaxError module */ ...
var (
	headerInline = regexp.MustCompile(`^//\s*\|reftest\|\s*(.*)$`)
	headerMulti  = regexp.MustCompile(`^/\*\s*\|reftest\|\s*(.*?)\*/`)

	skipIfPattern   = regexp.MustCompile(`skip-if\((.*)\)`)
	hasOwnPattern   = regexp.MustCompile(`!this\.hasOwnProperty\(['"](.*)['"]\)`)
	errorPattern    = regexp.MustCompile(`error:\s*(\w*)`)
	modulePattern   = regexp.MustCompile(`\smodule(\s|$)`)
	commentsPattern = regexp.MustCompile(` -- (.*)`)
)

// Header holds the metadata captured from a reftest manifest line.
type Header struct {
	// Raw is the full header line as it appeared in the source,
	// without the trailing newline.
	Raw string `json:"raw"`

	// SkipConditions lists the ||-separated terms of a skip-if()
	// entry, verbatim.
	SkipConditions []string `json:"skip_conditions,omitempty"`

	// Features lists globals the test depends on, recovered from
	// skip-if conditions of the form !this.hasOwnProperty('Name').
	Features []string `json:"features,omitempty"`

	// Error names the expected error constructor for negative
	// tests (e.g. "SyntaxError").
	Error string `json:"error,omitempty"`

	// Module is set when the header carries the module flag.
	Module bool `json:"module,omitempty"`

	// Comment is the free-form text after the " -- " separator.
	Comment string `json:"comment,omitempty"`
}

// Negative reports whether the header declares an expected error.
func (h *Header) Negative() bool {
	return h != nil && h.Error != ""
}

// Parse extracts the metadata entries from a raw header line.
func Parse(raw string) *Header {
	h := &Header{Raw: raw}

	if m := skipIfPattern.FindStringSubmatch(raw); m != nil {
		for _, cond := range strings.Split(m[1], "||") {
			cond = strings.TrimSpace(cond)
			if cond == "" {
				continue
			}
			h.SkipConditions = append(h.SkipConditions, cond)
			if fm := hasOwnPattern.FindStringSubmatch(cond); fm != nil {
				h.Features = append(h.Features, fm[1])
			}
		}
	}

	if m := errorPattern.FindStringSubmatch(raw); m != nil {
		h.Error = m[1]
	}

	if modulePattern.MatchString(raw) {
		h.Module = true
	}

	if m := commentsPattern.FindStringSubmatch(raw); m != nil {
		h.Comment = m[1]
	}

	return h
}

// Strip removes the reftest header from source, if present, and
// returns the remaining source together with the parsed header.
//
// Headers only count when the file opens with a comment; bare code
// means no header, and source comes back unchanged with a nil
// Header. The header is removed along with its newline so the
// following line moves up; when the header shares its line with code
// (a /* */ header followed by a statement) or the file has no
// trailing newline, only the header text itself is removed. Exactly
// one replacement either way, leaving the rest of the file
// byte-identical. A Header is only returned when the removal
// happened.
func Strip(source string) (string, *Header) {
	if !strings.HasPrefix(source, "//") && !strings.HasPrefix(source, "/*") {
		return source, nil
	}

	firstLine, _, _ := strings.Cut(source, "\n")

	matched := headerInline.FindString(firstLine)
	if matched == "" {
		matched = headerMulti.FindString(firstLine)
		if matched == "" {
			return source, nil
		}
	}

	stripped := strings.Replace(source, matched+"\n", "", 1)
	if stripped == source {
		stripped = strings.Replace(source, matched, "", 1)
	}
	return stripped, Parse(matched)
}
