// Package reactive provides the state primitives the router is built on.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	path := NewSignal("/")
//	path.Get()           // "/"
//	path.Set("/profile") // notifies subscribers
//	path.Set("/profile") // equal value, no notification
//
// Owner is a scope that owns effects, child scopes and cleanup functions.
// Disposing an owner releases everything below it:
//
//	scope := NewOwner(parent)
//	scope.OnCleanup(func() { timer.Stop() })
//	scope.Dispose()
//
// Effect runs a function now and again whenever one of its declared
// dependencies changes. The function may return a Cleanup:
//
//	CreateEffect(scope, func() Cleanup {
//	    render(path.Get())
//	    return nil
//	}, path)
//
// Context[T] passes values down the owner tree:
//
//	ctx := CreateContext[*Store](nil)
//	ctx.Provide(root, store)
//	ctx.Use(descendant) // store
//
// # Threading
//
// Signals and owners are safe for concurrent use, but effects assume a
// single UI loop: run all effect-triggering writes on one goroutine (see
// clock.Loop).
package reactive
