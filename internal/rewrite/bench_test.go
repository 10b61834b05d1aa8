package rewrite_test

import (
	"strings"
	"testing"

	"github.com/unbound-force/export262/internal/rewrite"
)

// benchSource approximates a mid-size jstest file: mostly inert
// lines with a handful of assertion calls.
func benchSource() string {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("// filler comment line\n")
		sb.WriteString("var v = compute();\n")
		sb.WriteString("reportCompare(expected, v, \"step\");\n")
	}
	sb.WriteString("reportCompare(0, 0);\n")
	return sb.String()
}

// BenchmarkSource benchmarks the full-file rewrite pass.
func BenchmarkSource(b *testing.B) {
	src := benchSource()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rewrite.Source(src)
	}
}

// BenchmarkSource_NoCalls benchmarks the common case of a file with
// nothing to rewrite.
func BenchmarkSource_NoCalls(b *testing.B) {
	src := strings.Repeat("var noop = 1;\n// comment\n", 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rewrite.Source(src)
	}
}
