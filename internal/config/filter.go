package config

import (
	"path/filepath"
	"strings"
)

// Filter returns true if the given tree-relative path should be
// processed by the export, based on the include/exclude patterns
// in cfg.
//
// Logic:
//  1. If include patterns are set, the file must match at least one
//     include pattern to be processed (overrides full-tree export).
//  2. If the file matches any exclude pattern, it is excluded.
//  3. Otherwise, the file is included.
func Filter(rel string, cfg *Config) bool {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	export := cfg.Export

	// Normalize separators to forward slash for matching consistency.
	rel = filepath.ToSlash(rel)

	// Include override: if include patterns are set, file must match
	// at least one.
	if len(export.Include) > 0 {
		matched := false
		for _, pattern := range export.Include {
			if matchGlob(pattern, rel) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Exclude: if the file matches any exclude pattern, skip it.
	for _, pattern := range export.Exclude {
		if matchGlob(pattern, rel) {
			return false
		}
	}

	return true
}

// matchGlob matches a path against a glob pattern. It supports
// both simple glob syntax (filepath.Match) and double-star
// prefix patterns like "supporting/**" and "lib/**".
func matchGlob(pattern, rel string) bool {
	// Handle double-star suffix: "supporting/**" matches any file
	// under the "supporting/" directory.
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
		return false
	}

	// Handle simple patterns like "template.js" or "*.js".
	matched, err := filepath.Match(pattern, rel)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	// Also try matching just the base name for patterns without
	// path separators (e.g., "shell.js" matches at any depth).
	if !strings.Contains(pattern, "/") {
		base := filepath.Base(rel)
		matched, err = filepath.Match(pattern, base)
		if err != nil {
			return false
		}
		return matched
	}

	return false
}
