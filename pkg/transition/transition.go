package transition

import (
	"fmt"
	"time"

	"github.com/vango-dev/vroute/pkg/ui"
)

// Kind names a visual effect applied when a route's match state changes.
type Kind uint8

const (
	Fade Kind = iota
	SlideLeft
	SlideRight
	SlideUp
	SlideDown
)

// DefaultKind is used when neither a route nor its ancestors choose a kind.
const DefaultKind = Fade

// DefaultDuration is the transition length used when none is configured.
const DefaultDuration = 300 * time.Millisecond

var kindNames = [...]string{
	Fade:       "fade",
	SlideLeft:  "slide-left",
	SlideRight: "slide-right",
	SlideUp:    "slide-up",
	SlideDown:  "slide-down",
}

// String returns the text form, e.g. "slide-left".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind parses the text form of a kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown transition %q (want one of fade, slide-left, slide-right, slide-up, slide-down)", s)
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid transition kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Style is a set of optional style values. A nil field leaves the
// corresponding property alone.
type Style struct {
	BackgroundTransparency *float64
	ImageTransparency      *float64
	TextTransparency       *float64
	Position               *ui.UDim2
}

// IsZero reports whether no field is set.
func (s Style) IsZero() bool {
	return s.BackgroundTransparency == nil &&
		s.ImageTransparency == nil &&
		s.TextTransparency == nil &&
		s.Position == nil
}

// TweenProps returns the properties a tween should drive toward this style.
// Image and text transparency both drive the container's Transparency.
func (s Style) TweenProps() ui.Props {
	props := ui.Props{}
	if s.Position != nil {
		props[ui.PropPosition] = *s.Position
	}
	if s.BackgroundTransparency != nil {
		props[ui.PropBackgroundTransparency] = *s.BackgroundTransparency
	}
	if s.ImageTransparency != nil {
		props[ui.PropTransparency] = *s.ImageTransparency
	}
	if s.TextTransparency != nil {
		props[ui.PropTransparency] = *s.TextTransparency
	}
	return props
}

// Config is the immutable style triple of a kind.
type Config struct {
	// Initial is where a freshly mounted container starts. Zero when the
	// kind has no distinct entry position.
	Initial Style

	// Animate is the resting style of a matched route.
	Animate Style

	// Exit is the style a route moves to after losing its match.
	Exit Style
}

// Start returns the style a freshly mounted container starts from: Initial
// when the kind defines one, otherwise Exit.
func (c Config) Start() Style {
	if !c.Initial.IsZero() {
		return c.Initial
	}
	return c.Exit
}

// Target returns Animate for a matched route and Exit otherwise.
func (c Config) Target(matched bool) Style {
	if matched {
		return c.Animate
	}
	return c.Exit
}

func num(v float64) *float64 { return &v }

func pos(x, y float64) *ui.UDim2 {
	u := ui.FromScale(x, y)
	return &u
}

func slide(from, to ui.UDim2) Config {
	return Config{
		Initial: Style{Position: pos(from.XScale, from.YScale)},
		Animate: Style{Position: pos(0, 0)},
		Exit:    Style{Position: pos(to.XScale, to.YScale)},
	}
}

// catalog is never handed out directly; Lookup returns copies so the table
// stays immutable.
var catalog = [...]Config{
	Fade: {
		Animate: Style{BackgroundTransparency: num(0), ImageTransparency: num(0)},
		Exit:    Style{BackgroundTransparency: num(1), ImageTransparency: num(1)},
	},
	SlideLeft:  slide(ui.FromScale(1, 0), ui.FromScale(-1, 0)),
	SlideRight: slide(ui.FromScale(-1, 0), ui.FromScale(1, 0)),
	SlideUp:    slide(ui.FromScale(0, 1), ui.FromScale(0, -1)),
	SlideDown:  slide(ui.FromScale(0, -1), ui.FromScale(0, 1)),
}

// Lookup returns the style triple for k. Unknown kinds fall back to Fade.
func Lookup(k Kind) Config {
	if !k.Valid() {
		k = Fade
	}
	return catalog[k].clone()
}

func (c Config) clone() Config {
	return Config{Initial: c.Initial.clone(), Animate: c.Animate.clone(), Exit: c.Exit.clone()}
}

func (s Style) clone() Style {
	var out Style
	if s.BackgroundTransparency != nil {
		out.BackgroundTransparency = num(*s.BackgroundTransparency)
	}
	if s.ImageTransparency != nil {
		out.ImageTransparency = num(*s.ImageTransparency)
	}
	if s.TextTransparency != nil {
		out.TextTransparency = num(*s.TextTransparency)
	}
	if s.Position != nil {
		p := *s.Position
		out.Position = &p
	}
	return out
}
