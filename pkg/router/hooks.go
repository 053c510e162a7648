package router

import (
	"context"

	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
)

// Router is what UseRouter hands to components.
type Router struct {
	CurrentPath string
	Params      routepath.Params
	Navigate    func(path string)
}

// UseRouter returns the current path, params and navigate function of the
// nearest Provider. Outside a provider it returns path "/", empty params
// and a navigate that does nothing.
//
// The values are read once. A component that must follow navigation
// creates an effect on UseStore(scope).PathSource().
func UseRouter(scope *reactive.Owner) Router {
	s, ok := storeContext.Lookup(scope)
	if !ok || s == nil {
		return Router{
			CurrentPath: DefaultInitialPath,
			Params:      routepath.Params{},
			Navigate:    func(string) {},
		}
	}
	return Router{
		CurrentPath: s.Path(),
		Params:      s.Params(),
		Navigate:    s.Navigate,
	}
}

// UseParams returns the params snapshot of the nearest Provider, or empty
// params outside one.
func UseParams(scope *reactive.Owner) routepath.Params {
	return UseRouter(scope).Params
}

// UseStore returns the nearest Provider's store, or nil outside one.
func UseStore(scope *reactive.Owner) *Store {
	return storeContext.Use(scope)
}

// UseNavigate returns a navigate function that records ctx on the
// navigation span.
func UseNavigate(ctx context.Context, scope *reactive.Owner) func(path string) {
	s := UseStore(scope)
	if s == nil {
		return func(string) {}
	}
	return func(path string) {
		s.NavigateContext(ctx, path)
	}
}
