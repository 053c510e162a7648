package headless

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/atomic"

	"github.com/vango-dev/vroute/pkg/ui"
)

var nodeIDs atomic.Uint64

// Node is an in-memory ui.Node.
type Node struct {
	id        uint64
	class     string
	props     ui.Props
	parent    *Node
	children  []*Node
	handlers  map[string][]*handler
	destroyed bool
}

type handler struct {
	fn func()
}

// NewRoot creates a detached root frame.
func NewRoot() *Node {
	return newNode(ui.ClassFrame, ui.Props{
		ui.PropName: "Root",
		ui.PropSize: ui.FromScale(1, 1),
	})
}

func newNode(class string, props ui.Props) *Node {
	n := &Node{
		id:    nodeIDs.Inc(),
		class: class,
		props: ui.Props{},
	}
	for k, v := range props {
		n.props[k] = v
	}
	return n
}

// ID implements ui.Node.
func (n *Node) ID() uint64 { return n.id }

// Class implements ui.Node.
func (n *Node) Class() string { return n.class }

// Get implements ui.Node.
func (n *Node) Get(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// Props returns a copy of all properties.
func (n *Node) Props() ui.Props {
	return n.props.Clone()
}

// Set implements ui.Node.
func (n *Node) Set(props ui.Props) {
	if n.destroyed {
		return
	}
	for k, v := range props {
		n.props[k] = v
	}
}

// NewChild implements ui.Node.
func (n *Node) NewChild(class string, props ui.Props) ui.Node {
	child := newNode(class, props)
	if n.destroyed {
		child.destroyed = true
		return child
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Children implements ui.Node.
func (n *Node) Children() []ui.Node {
	out := make([]ui.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Parent implements ui.Node.
func (n *Node) Parent() ui.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Connect implements ui.Node.
func (n *Node) Connect(event string, fn func()) func() {
	if n.handlers == nil {
		n.handlers = make(map[string][]*handler)
	}
	h := &handler{fn: fn}
	n.handlers[event] = append(n.handlers[event], h)

	return func() {
		list := n.handlers[event]
		for i, existing := range list {
			if existing == h {
				n.handlers[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Fire runs the handlers connected to event, in connection order.
// A destroyed node fires nothing.
func (n *Node) Fire(event string) int {
	if n.destroyed {
		return 0
	}
	list := append([]*handler(nil), n.handlers[event]...)
	for _, h := range list {
		h.fn()
	}
	return len(list)
}

// Destroy implements ui.Node.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	n.destroySubtree()
}

func (n *Node) destroySubtree() {
	n.destroyed = true
	n.handlers = nil
	for _, c := range n.children {
		c.parent = nil
		c.destroySubtree()
	}
	n.children = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Destroyed implements ui.Node.
func (n *Node) Destroyed() bool { return n.destroyed }

// Find returns the first descendant (depth-first, including n) whose Name
// property equals name.
func (n *Node) Find(name string) *Node {
	if v, ok := n.props[ui.PropName]; ok && v == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (including n) of the given class.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	if n.class == class {
		out = append(out, n)
	}
	for _, c := range n.children {
		out = append(out, c.FindAll(class)...)
	}
	return out
}

// Dump renders the subtree as an indented outline, one node per line with
// its class, name and sorted properties. It is used by golden-style tests
// and the simulate command.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.class)

	keys := make([]string, 0, len(n.props))
	for k := range n.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, n.props[k])
	}
	b.WriteByte('\n')

	for _, c := range n.children {
		c.dump(b, depth+1)
	}
}

// AsNode returns n as *Node when it was created by this package.
func AsNode(n ui.Node) (*Node, bool) {
	hn, ok := n.(*Node)
	return hn, ok
}
