package routepath

import (
	"errors"
	"fmt"
	"strings"
)

// Pattern compilation errors.
var (
	ErrEmptyParamName = errors.New("parameter segment has no name")
	ErrDuplicateParam = errors.New("parameter name used more than once")
)

// PatternError reports a malformed route pattern.
type PatternError struct {
	// Pattern is the raw pattern as registered.
	Pattern string

	// Segment is the offending segment.
	Segment string

	// Index is the zero-based position of Segment in the pattern.
	Index int

	// Err is ErrEmptyParamName or ErrDuplicateParam.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("route pattern %q: segment %d %q: %v", e.Pattern, e.Index, e.Segment, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// segment is one compiled pattern segment.
type segment struct {
	// literal is the exact text to compare for static segments.
	literal string

	// param is the parameter name for ":name" segments.
	param string

	isParam bool
}

// Pattern is a compiled route pattern such as "/users/:id/posts".
//
// Segments starting with ':' are parameter placeholders; the rest of the
// segment is the parameter name. All other segments must match exactly.
type Pattern struct {
	raw      string
	segments []segment
	params   []string
}

// Compile parses and validates a route pattern.
//
// A parameter segment must have a name, and a name may appear only once in a
// pattern. Violations return a *PatternError wrapping ErrEmptyParamName or
// ErrDuplicateParam.
func Compile(raw string) (*Pattern, error) {
	parts := Split(raw)
	p := &Pattern{
		raw:      raw,
		segments: make([]segment, 0, len(parts)),
	}

	seen := make(map[string]struct{})
	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, &PatternError{Pattern: raw, Segment: part, Index: i, Err: ErrEmptyParamName}
		}
		if _, dup := seen[name]; dup {
			return nil, &PatternError{Pattern: raw, Segment: part, Index: i, Err: ErrDuplicateParam}
		}
		seen[name] = struct{}{}

		p.segments = append(p.segments, segment{param: name, isParam: true})
		p.params = append(p.params, name)
	}

	return p, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
// It simplifies declaring route tables in package-level variables.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as registered.
func (p *Pattern) String() string {
	return p.raw
}

// Canonical returns the pattern in normalized form, e.g. "/users/:id".
func (p *Pattern) Canonical() string {
	return Normalize(p.raw)
}

// Params returns the declared parameter names in pattern order.
func (p *Pattern) Params() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// Len returns the number of segments.
func (p *Pattern) Len() int {
	return len(p.segments)
}

// IsStatic reports whether the pattern has no parameter segments.
func (p *Pattern) IsStatic() bool {
	return len(p.params) == 0
}

// Match matches the pattern against a path.
func (p *Pattern) Match(path string) Result {
	return matchSegments(p.segments, Split(path))
}

// Overlaps reports whether some path could match both patterns. Two patterns
// overlap when they have the same arity and every segment pair is either a
// parameter on one side or an equal literal.
func (p *Pattern) Overlaps(other *Pattern) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		o := other.segments[i]
		if s.isParam || o.isParam {
			continue
		}
		if s.literal != o.literal {
			return false
		}
	}
	return true
}
