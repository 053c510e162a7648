// Package router provides client-side navigation for a component tree.
//
// A Provider owns the current path and the captured route parameters.
// Routes and Route register patterns below it; each mounted Route runs a
// Controller that shows its component while the pattern matches and drives
// the enter and exit transitions. Link renders a button that navigates.
//
//	app := router.Provider(
//	    component.Group(
//	        router.Link("/profile/7", "Profile"),
//	        router.Routes(
//	            router.Route("/home", Home()),
//	            router.Route("/profile/:id", Profile()),
//	        ).Transition(transition.SlideLeft),
//	    ),
//	    router.WithInitialPath("/home"),
//	    router.WithScheduler(loop),
//	    router.WithTweenService(tweens),
//	)
//
// # Route Lifecycle
//
// On every path change each route matches the new path:
//
//	hidden ──match──► entering ──duration──► visible
//	   ▲                                        │
//	   └──duration── exiting ◄──no match────────┘
//
// A hidden route renders nothing. Otherwise its content sits in a full-size
// container tweened toward the kind's animate style while matched and
// toward its exit style after losing the match. A newer path change always
// supersedes a pending transition.
//
// # Transition Settings
//
// The kind and duration of a route come from, in order: the enclosing
// Routes, the Route itself, the Provider, then fade over 300ms.
//
// # Params
//
// A successful match merges the captured parameters into the store's
// params snapshot key by key. Keys are never removed, so a parameter
// captured by an earlier route stays readable after navigating away.
package router
