// Package frontmatter generates the Test262 metadata block
// (/*--- ... ---*/ with YAML inside) for exported tests, from the
// metadata captured off a jstest reftest header.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/export262/internal/reftest"
)

// Negative describes an expected error for a negative test.
type Negative struct {
	// Phase is "parse" for early errors, "runtime" otherwise.
	Phase string `yaml:"phase"`

	// Type is the error constructor name (e.g. "SyntaxError").
	Type string `yaml:"type"`
}

// Meta is the Test262 frontmatter document.
type Meta struct {
	Esid        string    `yaml:"esid,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Info        string    `yaml:"info,omitempty"`
	Negative    *Negative `yaml:"negative,omitempty"`
	Features    []string  `yaml:"features,omitempty,flow"`
	Flags       []string  `yaml:"flags,omitempty,flow"`
}

// earlyErrors are error constructors reported before evaluation
// starts. Anything else is assumed to be a runtime error.
var earlyErrors = map[string]bool{
	"SyntaxError":    true,
	"ReferenceError": true,
}

// FromHeader builds frontmatter from a parsed reftest header.
// Returns nil when h is nil (no header, no frontmatter).
func FromHeader(h *reftest.Header) *Meta {
	if h == nil {
		return nil
	}

	m := &Meta{
		Esid:        "pending",
		Description: h.Comment,
		Features:    h.Features,
	}

	if h.Error != "" {
		phase := "runtime"
		if earlyErrors[h.Error] {
			phase = "parse"
		}
		m.Negative = &Negative{Phase: phase, Type: h.Error}
	}

	if h.Module {
		m.Flags = append(m.Flags, "module")
	}

	return m
}

// Block renders the frontmatter as a Test262 metadata comment,
// ending with a newline:
//
//	/*---
//	esid: pending
//	features: [Intl]
//	---*/
func (m *Meta) Block() (string, error) {
	body, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshalling frontmatter: %w", err)
	}
	return "/*---\n" + string(body) + "---*/\n", nil
}

// Insert prepends the rendered frontmatter block to source, in the
// position the stripped reftest header occupied.
func (m *Meta) Insert(source string) (string, error) {
	block, err := m.Block()
	if err != nil {
		return "", err
	}
	return block + source, nil
}

// ParseBlock extracts and decodes a frontmatter block from exported
// source, for round-trip verification. Returns nil when source has
// no metadata block.
func ParseBlock(source string) (*Meta, error) {
	start := strings.Index(source, "/*---")
	if start < 0 {
		return nil, nil
	}
	end := strings.Index(source, "---*/")
	if end < start {
		return nil, fmt.Errorf("unterminated frontmatter block")
	}

	var m Meta
	if err := yaml.Unmarshal([]byte(source[start+len("/*---"):end]), &m); err != nil {
		return nil, fmt.Errorf("decoding frontmatter: %w", err)
	}
	return &m, nil
}
