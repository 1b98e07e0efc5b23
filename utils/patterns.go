package utils

import (
	"fmt"

	"github.com/gobwas/glob"
)

// PatternMatcher filters candidate paths against inclusion globs.
// Globs match the full path and wildcards are free to cross path
// separators, matching fnmatch without FNM_PATHNAME.
type PatternMatcher struct {
	globs []glob.Glob
}

func NewPatternMatcher(patterns []string) (*PatternMatcher, error) {
	m := &PatternMatcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %v", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// ShouldInclude returns true when no globs are configured, or when at
// least one glob matches path.
func (m *PatternMatcher) ShouldInclude(path string) bool {
	if m == nil || len(m.globs) == 0 {
		return true
	}
	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
