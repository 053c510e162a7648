// Package routepath matches slash-delimited navigation paths against route
// patterns and captures named parameters.
//
// A path is a string of '/'-separated segments; leading, trailing and
// duplicate slashes are ignored. A pattern is a path whose ':'-prefixed
// segments are parameter placeholders:
//
//	p := routepath.MustCompile("/users/:id")
//	r := p.Match("/users/42")
//	r.IsMatch            // true
//	r.Params.Value("id") // "42"
//
// Matching is all-or-nothing: the segment counts must be equal and every
// literal segment must compare equal. There are no wildcards, optional
// segments or prefix matches, and segments are never percent-decoded.
//
// Captured parameters are returned as an immutable Params value. Merging
// produces a new value, which lets a navigation store publish a snapshot
// that readers can hold on to safely.
package routepath
