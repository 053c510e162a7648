package router

import (
	"time"

	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/transition"
	"github.com/vango-dev/vroute/pkg/ui"
)

// RoutesComponent groups routes in one full-size container. Transition
// settings set on it override the settings of every route below it.
type RoutesComponent struct {
	routes   []component.Component
	settings Settings
}

// Routes groups routes. Children are usually *RouteDef values but any
// component is accepted.
func Routes(routes ...component.Component) *RoutesComponent {
	return &RoutesComponent{routes: routes}
}

// Transition sets the transition kind for every route in the group.
func (r *RoutesComponent) Transition(k transition.Kind) *RoutesComponent {
	r.settings = r.settings.WithKind(k)
	return r
}

// Duration sets the transition duration for every route in the group.
func (r *RoutesComponent) Duration(d time.Duration) *RoutesComponent {
	r.settings = r.settings.WithDuration(d)
	return r
}

// Mount implements component.Component.
func (r *RoutesComponent) Mount(scope *reactive.Owner, parent ui.Node) {
	inner := reactive.NewOwner(scope)

	override := r.settings
	if outer, ok := routesContext.Lookup(scope); ok {
		override = override.Or(outer)
	}
	if override.KindSet || override.DurationSet {
		routesContext.Provide(inner, override)
	}

	frame := component.Element(inner, parent, ui.ClassFrame, ui.Props{
		ui.PropName:                   "Routes",
		ui.PropSize:                   ui.FromScale(1, 1),
		ui.PropBackgroundTransparency: 1.0,
	})
	for _, route := range r.routes {
		if route != nil {
			route.Mount(inner, frame)
		}
	}
}
