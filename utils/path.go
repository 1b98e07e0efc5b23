package utils

import "strings"

// PathComponents splits path on slash and backslash separators,
// dropping empty components.
func PathComponents(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// NameSet is a set of path component names.
type NameSet map[string]struct{}

func NewNameSet(names []string) NameSet {
	s := make(NameSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Contains reports whether name is a member of the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsComponent reports whether any component of path is a member
// of the set.
func (s NameSet) ContainsComponent(path string) bool {
	if len(s) == 0 {
		return false
	}
	for _, part := range PathComponents(path) {
		if s.Contains(part) {
			return true
		}
	}
	return false
}
