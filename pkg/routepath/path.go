package routepath

import "strings"

// Split breaks a path into its non-empty segments.
//
// Leading, trailing and repeated slashes are ignored:
//
//	Split("/users//42/") → ["users", "42"]
//	Split("/")           → []
func Split(path string) []string {
	if path == "" {
		return nil
	}

	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Normalize returns the canonical form of a path: a leading slash, single
// separators and no trailing slash. The root path is "/".
//
// Normalize only rewrites separators. Segments are never decoded or
// validated.
func Normalize(path string) string {
	return "/" + strings.Join(Split(path), "/")
}

// Equal reports whether two paths have the same segments.
func Equal(a, b string) bool {
	as, bs := Split(a), Split(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
