package router

import (
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/ui"
)

// RouteDef is a registered route: a compiled pattern, the component shown
// while it matches, and its own transition settings.
type RouteDef struct {
	pattern  *routepath.Pattern
	content  component.Component
	settings Settings
}

// NewRoute compiles pattern and returns the route, or an error when the
// pattern is malformed.
func NewRoute(pattern string, content component.Component, opts ...RouteOption) (*RouteDef, error) {
	p, err := routepath.Compile(pattern)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidPattern).
			WithDetailf("pattern %q", pattern).
			Wrap(err)
	}

	r := &RouteDef{pattern: p, content: content}
	for _, opt := range opts {
		opt(&r.settings)
	}
	return r, nil
}

// Route is like NewRoute but panics when the pattern is malformed.
// Use it for routes declared in code.
func Route(pattern string, content component.Component, opts ...RouteOption) *RouteDef {
	r, err := NewRoute(pattern, content, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the compiled pattern.
func (r *RouteDef) Pattern() *routepath.Pattern { return r.pattern }

// Settings returns the route's own transition settings.
func (r *RouteDef) Settings() Settings { return r.settings }

// Mount implements component.Component. It panics when no Provider encloses
// the route.
func (r *RouteDef) Mount(scope *reactive.Owner, parent ui.Node) {
	store, ok := storeContext.Lookup(scope)
	if !ok {
		panic(errors.New(errors.CodeNoProvider).WithDetailf("route %q has no enclosing router.Provider", r.pattern.String()))
	}

	settings := r.settings.Or(store.Defaults())
	if override, ok := routesContext.Lookup(scope); ok {
		settings = settings.Over(override)
	}
	kind, d := settings.Resolved()

	c := newController(store, r, reactive.NewOwner(scope), parent, kind, d)
	c.mount()
}
