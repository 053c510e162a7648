package component

import (
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/ui"
)

// Component is anything that can mount itself into the presentation tree.
//
// Mount builds the component's nodes under parent. Everything the component
// allocates (nodes, effects, timers) must be tied to scope, so that
// disposing scope unmounts the component completely.
type Component interface {
	Mount(scope *reactive.Owner, parent ui.Node)
}

// FuncComponent wraps a mount function.
type FuncComponent struct {
	mount func(scope *reactive.Owner, parent ui.Node)
}

// Mount implements Component.
func (f *FuncComponent) Mount(scope *reactive.Owner, parent ui.Node) {
	f.mount(scope, parent)
}

// Func creates a component from a mount function.
func Func(mount func(scope *reactive.Owner, parent ui.Node)) Component {
	return &FuncComponent{mount: mount}
}

// Text is a plain-text component rendered as a text label. It is also how
// callers pass a plain string where a component is accepted.
type Text string

// Mount implements Component.
func (t Text) Mount(scope *reactive.Owner, parent ui.Node) {
	Element(scope, parent, ui.ClassTextLabel, ui.Props{
		ui.PropText:                   string(t),
		ui.PropBackgroundTransparency: 1.0,
	})
}

// Fragment groups components without a wrapper node.
type Fragment []Component

// Mount implements Component.
func (f Fragment) Mount(scope *reactive.Owner, parent ui.Node) {
	for _, c := range f {
		if c != nil {
			c.Mount(scope, parent)
		}
	}
}

// Group creates a Fragment from its arguments.
func Group(children ...Component) Fragment {
	return Fragment(children)
}

// Element creates a child node of parent that is destroyed when scope is
// disposed.
func Element(scope *reactive.Owner, parent ui.Node, class string, props ui.Props) ui.Node {
	n := parent.NewChild(class, props)
	scope.OnCleanup(n.Destroy)
	return n
}

// Mount mounts c in a new child scope of parent and returns that scope.
// Disposing the returned scope unmounts c.
func Mount(c Component, parentScope *reactive.Owner, parent ui.Node) *reactive.Owner {
	scope := reactive.NewOwner(parentScope)
	if c != nil {
		c.Mount(scope, parent)
	}
	return scope
}

// PlainText reports whether v is plain text (a string or Text) and returns
// it.
func PlainText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case Text:
		return string(t), true
	default:
		return "", false
	}
}
