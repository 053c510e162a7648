package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vango-dev/vroute/pkg/routepath"
)

// ansi is an SGR escape sequence.
type ansi string

const (
	ansiReset  ansi = "\033[0m"
	ansiBold   ansi = "\033[1m"
	ansiRed    ansi = "\033[31m"
	ansiGreen  ansi = "\033[32m"
	ansiYellow ansi = "\033[33m"
	ansiCyan   ansi = "\033[36m"
	ansiGray   ansi = "\033[90m"
)

var colorEnabled = true

// DisableColors turns off ANSI escapes in Format output.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colorEnabled = true }

// paint wraps text in the given escapes when colors are enabled.
func paint(text string, codes ...ansi) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(string(c))
	}
	b.WriteString(text)
	b.WriteString(string(ansiReset))
	return b.String()
}

// Format renders the error for a terminal:
//
//	ERROR VR002: Invalid route pattern
//
//	  /users/:id/posts/:id
//	                   ^^^ parameter name used more than once
//
//	  Hint: ...
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	head := "ERROR"
	if e.Code != "" {
		head += " " + e.Code
	}
	fmt.Fprintf(&b, "%s %s\n\n", paint(head+":", ansiRed, ansiBold), paint(e.Message, ansiBold))

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		e.writeContext(&b)
	}
	if e.Pattern != nil {
		e.Pattern.write(&b, e.patternReason())
	}

	for _, line := range wrapText(e.Detail, 70) {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if e.Detail != "" {
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiYellow), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint("Example:", ansiGreen))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", paint("Cause: ", ansiGray), e.Wrapped.Error())
	}

	return b.String()
}

// writeContext prints the lines around Location with the error line marked.
func (e *Error) writeContext(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}
	first := e.Location.Line - len(e.Context)/2
	for i, line := range e.Context {
		n := first + i
		marker := "    "
		if n == e.Location.Line {
			marker = "  " + paint("→ ", ansiRed)
		}
		fmt.Fprintf(b, "%s%4d%s%s\n", marker, n, paint(" │ ", ansiGray), line)
		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", paint("│ ", ansiGray),
				strings.Repeat(" ", e.Location.Column-1), paint("^", ansiRed))
		}
	}
	b.WriteString("\n")
}

// patternReason is the short cause printed under a pattern span.
func (e *Error) patternReason() string {
	switch {
	case stderrors.Is(e.Wrapped, routepath.ErrEmptyParamName):
		return routepath.ErrEmptyParamName.Error()
	case stderrors.Is(e.Wrapped, routepath.ErrDuplicateParam):
		return routepath.ErrDuplicateParam.Error()
	}
	return ""
}

// write prints the normalized pattern with the offending segment underlined.
func (p *PatternSpan) write(b *strings.Builder, reason string) {
	parts := routepath.Split(p.Pattern)
	if p.Index < 0 || p.Index >= len(parts) {
		fmt.Fprintf(b, "  %s\n\n", p.Pattern)
		return
	}

	col := 1
	for _, part := range parts[:p.Index] {
		col += len(part) + 1
	}
	width := len(parts[p.Index])
	if width == 0 {
		width = 1
	}

	fmt.Fprintf(b, "  %s\n", "/"+strings.Join(parts, "/"))
	fmt.Fprintf(b, "  %s%s", strings.Repeat(" ", col), paint(strings.Repeat("^", width), ansiRed))
	if reason != "" {
		b.WriteString(" " + reason)
	}
	b.WriteString("\n\n")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonPattern struct {
	Pattern string `json:"pattern"`
	Segment string `json:"segment"`
	Index   int    `json:"index"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Pattern    *jsonPattern  `json:"pattern,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{e.Location.File, e.Location.Line, e.Location.Column}
	}
	if e.Pattern != nil {
		out.Pattern = &jsonPattern{e.Pattern.Pattern, e.Pattern.Segment, e.Pattern.Index}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes where word
// boundaries allow.
func wrapText(text string, width int) []string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}

// Fprint writes err to w, fully formatted when it is an *Error.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		io.WriteString(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
}
