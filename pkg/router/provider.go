package router

import (
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/ui"
)

var (
	storeContext  = reactive.CreateContext[*Store](nil)
	routesContext = reactive.CreateContext(Settings{})
)

// ProviderComponent owns the navigation store of a routed subtree.
type ProviderComponent struct {
	child component.Component
	opts  []Option
	store *Store
}

// Provider creates the root of a routed subtree. Each mount creates a new
// Store, configured by opts, visible to every component below it.
func Provider(child component.Component, opts ...Option) *ProviderComponent {
	return &ProviderComponent{child: child, opts: opts}
}

// Store returns the store of the most recent mount, or nil before the
// first mount.
func (p *ProviderComponent) Store() *Store {
	return p.store
}

// Mount implements component.Component.
func (p *ProviderComponent) Mount(scope *reactive.Owner, parent ui.Node) {
	inner := reactive.NewOwner(scope)
	store := NewStore(p.opts...)
	p.store = store
	storeContext.Provide(inner, store)

	frame := component.Element(inner, parent, ui.ClassFrame, ui.Props{
		ui.PropName:                   "RouterProvider",
		ui.PropSize:                   ui.FromScale(1, 1),
		ui.PropBackgroundTransparency: 1.0,
	})
	if p.child != nil {
		p.child.Mount(inner, frame)
	}
}
