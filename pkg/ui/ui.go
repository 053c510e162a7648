package ui

import (
	"fmt"
	"time"
)

// Property names understood by container nodes.
const (
	PropName                   = "Name"
	PropSize                   = "Size"
	PropPosition               = "Position"
	PropBackgroundTransparency = "BackgroundTransparency"
	PropBackgroundColor        = "BackgroundColor3"
	PropBorderSize             = "BorderSizePixel"
	PropTransparency           = "Transparency"
	PropText                   = "Text"
	PropTextSize               = "TextSize"
	PropFont                   = "Font"
	PropAutomaticSize          = "AutomaticSize"
)

// Node classes created by the router.
const (
	ClassFrame      = "Frame"
	ClassTextButton = "TextButton"
	ClassTextLabel  = "TextLabel"
)

// Values of PropAutomaticSize and PropFont.
const (
	AutomaticSizeXY = "XY"
	FontSourceSans  = "SourceSans"
)

// EventActivated fires when an actionable node (a button) is clicked or
// otherwise activated.
const EventActivated = "Activated"

// UDim2 is a two-dimensional size or position made of a scale component
// (fraction of the parent) and a pixel offset per axis.
type UDim2 struct {
	XScale  float64 `json:"xScale"`
	XOffset float64 `json:"xOffset"`
	YScale  float64 `json:"yScale"`
	YOffset float64 `json:"yOffset"`
}

// FromScale builds a UDim2 from scale components only.
func FromScale(x, y float64) UDim2 {
	return UDim2{XScale: x, YScale: y}
}

// FromOffset builds a UDim2 from pixel offsets only.
func FromOffset(x, y float64) UDim2 {
	return UDim2{XOffset: x, YOffset: y}
}

// Lerp interpolates between u and v. Alpha 0 is u, alpha 1 is v.
func (u UDim2) Lerp(v UDim2, alpha float64) UDim2 {
	return UDim2{
		XScale:  u.XScale + (v.XScale-u.XScale)*alpha,
		XOffset: u.XOffset + (v.XOffset-u.XOffset)*alpha,
		YScale:  u.YScale + (v.YScale-u.YScale)*alpha,
		YOffset: u.YOffset + (v.YOffset-u.YOffset)*alpha,
	}
}

// String renders the value as {xs, xo}, {ys, yo}.
func (u UDim2) String() string {
	return fmt.Sprintf("{%g, %g}, {%g, %g}", u.XScale, u.XOffset, u.YScale, u.YOffset)
}

// Color3 is an RGB color with components in [0, 1].
type Color3 struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// White is Color3{1, 1, 1}.
var White = Color3{R: 1, G: 1, B: 1}

// FromRGB builds a Color3 from 8-bit components.
func FromRGB(r, g, b uint8) Color3 {
	return Color3{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// String renders the color as 8-bit components, e.g. "255, 255, 255".
func (c Color3) String() string {
	return fmt.Sprintf("%d, %d, %d", uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}

// Props is a set of property values keyed by property name.
type Props map[string]any

// Clone returns a shallow copy.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node is a container in the presentation tree. It holds child nodes, carries
// style properties and emits events.
//
// Nodes are not safe for concurrent use; all calls happen on the UI loop.
type Node interface {
	// ID returns a tree-unique identifier.
	ID() uint64

	// Class returns the node class, e.g. ClassFrame.
	Class() string

	// Get returns the current value of a property.
	Get(name string) (any, bool)

	// Set merges props into the node's properties.
	Set(props Props)

	// NewChild creates a node of the given class with initial props and
	// appends it to this node's children.
	NewChild(class string, props Props) Node

	// Children returns the live children in insertion order.
	Children() []Node

	// Parent returns the parent node, or nil for a root or destroyed node.
	Parent() Node

	// Connect registers fn for the named event and returns a function that
	// disconnects it.
	Connect(event string, fn func()) (disconnect func())

	// Destroy detaches the node from its parent and destroys its subtree.
	// Destroying a destroyed node is a no-op.
	Destroy()

	// Destroyed reports whether Destroy has been called.
	Destroyed() bool
}

// Tween is a handle to a running interpolation.
type Tween interface {
	// Play starts the interpolation.
	Play()

	// Cancel stops the interpolation where it is. Completion callbacks do
	// not run for a cancelled tween.
	Cancel()

	// OnCompleted registers fn to run once when the tween finishes.
	OnCompleted(fn func())

	// Destroy releases the handle.
	Destroy()
}

// TweenService creates tweens that move a node's properties from their
// current values to target values over a duration.
type TweenService interface {
	Create(target Node, d time.Duration, props Props) Tween
}

// Timer is a pending delayed callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the UI loop.
type Scheduler interface {
	Delay(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) Timer

// Delay implements Scheduler.
func (f SchedulerFunc) Delay(d time.Duration, fn func()) Timer {
	return f(d, fn)
}
