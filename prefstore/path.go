package prefstore

import "strings"

// splitPath parses a dotted path into its object-key segments.
//
// A valid path matches segment ('.' segment)* where a segment is one or
// more non-dot characters. The empty path, leading or trailing dots,
// and consecutive dots are all invalid and yield ok=false.
func splitPath(path string) (segments []string, ok bool) {
	if path == "" {
		return nil, false
	}
	segments = strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, false
		}
	}
	return segments, true
}
