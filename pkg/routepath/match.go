package routepath

// Result is the outcome of matching a route pattern against a path.
type Result struct {
	// IsMatch is true when every segment pair matched.
	IsMatch bool

	// Params holds the captured parameters. It is empty unless IsMatch.
	Params Params
}

// Match matches a raw route pattern against a path.
//
// Both strings are split on '/' with empty segments discarded. A different
// segment count is a no-match. Otherwise each pattern segment starting with
// ':' binds the corresponding path segment to the name that follows the
// colon, and every other segment must be exactly equal (case-sensitive).
//
//	Match("/users/:id", "/users/42")       → {true, {id=42}}
//	Match("/users/:id", "/users/42/extra") → {false, {}}
//
// Match does not validate the pattern; use Compile at registration time to
// reject empty or duplicate parameter names.
func Match(pattern, path string) Result {
	parts := Split(pattern)
	segments := make([]segment, len(parts))
	for i, part := range parts {
		if len(part) > 0 && part[0] == ':' {
			segments[i] = segment{param: part[1:], isParam: true}
		} else {
			segments[i] = segment{literal: part}
		}
	}
	return matchSegments(segments, Split(path))
}

// matchSegments is the shared matching loop. It allocates the params map
// only once the arity check passes and a parameter is actually captured.
func matchSegments(pattern []segment, path []string) Result {
	if len(pattern) != len(path) {
		return Result{}
	}

	var captured map[string]string
	for i, seg := range pattern {
		if seg.isParam {
			if captured == nil {
				captured = make(map[string]string)
			}
			captured[seg.param] = path[i]
			continue
		}
		if seg.literal != path[i] {
			return Result{}
		}
	}

	return Result{IsMatch: true, Params: Params{m: captured}}
}
