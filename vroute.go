// Package vroute provides the public API for transition-animated routing.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/vroute"
//
// Usage:
//
//	app := vroute.Provider(
//	    component.Group(
//	        vroute.Link("/users/42", "Profile"),
//	        vroute.Routes(
//	            vroute.Route("/home", Home()),
//	            vroute.Route("/users/:id", Profile(), vroute.Transition(vroute.SlideLeft)),
//	        ).Duration(200*time.Millisecond),
//	    ),
//	    vroute.WithScheduler(loop),
//	    vroute.WithTweenService(tweens),
//	)
package vroute

import (
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/transition"
)

// =============================================================================
// Components
// =============================================================================

// Component is anything that can mount into a UI node.
type Component = component.Component

// Provider creates the root of a routed subtree.
var Provider = router.Provider

// Routes groups routes and can override their transition settings.
var Routes = router.Routes

// Route renders content while its pattern matches the current path.
// It panics on a malformed pattern; use NewRoute to get the error instead.
var Route = router.Route

// NewRoute is Route returning pattern errors.
var NewRoute = router.NewRoute

// Link renders a button that navigates to a path when activated.
var Link = router.Link

type (
	ProviderComponent = router.ProviderComponent
	RoutesComponent   = router.RoutesComponent
	RouteDef          = router.RouteDef
	LinkComponent     = router.LinkComponent
)

// =============================================================================
// Hooks
// =============================================================================

// Router is the view of the navigation store handed to components.
type Router = router.Router

// UseRouter returns the nearest router, or a default one outside any
// provider.
func UseRouter(scope *reactive.Owner) Router {
	return router.UseRouter(scope)
}

// UseParams returns the current params snapshot.
func UseParams(scope *reactive.Owner) Params {
	return router.UseParams(scope)
}

// UseStore returns the nearest store, or nil.
func UseStore(scope *reactive.Owner) *Store {
	return router.UseStore(scope)
}

// UseNavigate returns a navigate function that traces under ctx.
var UseNavigate = router.UseNavigate

// =============================================================================
// Store and options
// =============================================================================

type (
	Store       = router.Store
	Snapshot    = router.Snapshot
	Option      = router.Option
	RouteOption = router.RouteOption
	Settings    = router.Settings
	Metrics     = router.Metrics
)

// NewStore creates a store without a tree.
var NewStore = router.NewStore

// NewMetrics registers the router's Prometheus collectors.
var NewMetrics = router.NewMetrics

var (
	WithInitialPath        = router.WithInitialPath
	WithTransition         = router.WithTransition
	WithTransitionDuration = router.WithTransitionDuration
	WithScheduler          = router.WithScheduler
	WithTweenService       = router.WithTweenService
	WithLogger             = router.WithLogger
	WithMetrics            = router.WithMetrics
	WithTracer             = router.WithTracer
	WithLanguage           = router.WithLanguage
	WithObserver           = router.WithObserver
)

// Transition and Duration override a single route's settings.
var (
	Transition = router.Transition
	Duration   = router.Duration
)

// =============================================================================
// Transitions
// =============================================================================

// Kind names a transition effect.
type Kind = transition.Kind

const (
	Fade       = transition.Fade
	SlideLeft  = transition.SlideLeft
	SlideRight = transition.SlideRight
	SlideUp    = transition.SlideUp
	SlideDown  = transition.SlideDown
)

// ParseKind parses "fade", "slide-left" and so on.
var ParseKind = transition.ParseKind

// =============================================================================
// Route state and events
// =============================================================================

type (
	State     = router.State
	Phase     = router.Phase
	Event     = router.Event
	EventType = router.EventType
)

const (
	PhaseHidden   = router.PhaseHidden
	PhaseEntering = router.PhaseEntering
	PhaseVisible  = router.PhaseVisible
	PhaseExiting  = router.PhaseExiting
)

const (
	EventNavigate = router.EventNavigate
	EventPhase    = router.EventPhase
	EventParams   = router.EventParams
	EventMount    = router.EventMount
	EventUnmount  = router.EventUnmount
)

// =============================================================================
// Path matching
// =============================================================================

type (
	Params       = routepath.Params
	Pattern      = routepath.Pattern
	MatchResult  = routepath.Result
	PatternError = routepath.PatternError
)

// Match matches a raw pattern against a path.
var Match = routepath.Match

// Compile validates a pattern for repeated matching.
var Compile = routepath.Compile

var (
	ErrEmptyParamName = routepath.ErrEmptyParamName
	ErrDuplicateParam = routepath.ErrDuplicateParam
)
