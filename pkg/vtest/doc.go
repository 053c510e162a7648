// Package vtest provides testing helpers for routed component trees.
//
// A Harness mounts a router.Provider on a headless tree whose scheduler and
// tween service run on a manual clock, so transitions advance only when the
// test says so.
//
// # Quick Start
//
//	func TestProfile(t *testing.T) {
//	    h := vtest.New(router.Routes(
//	        router.Route("/home", component.Text("home")),
//	        router.Route("/profile/:id", component.Text("profile")),
//	    )).WithInitialPath("/home").Mount(t)
//
//	    h.Navigate("/profile/7")
//	    h.Advance(300 * time.Millisecond)
//
//	    h.ExpectPhase("/home", router.PhaseHidden)
//	    h.ExpectShown("/profile/:id")
//	    h.ExpectParam("id", "7")
//	}
//
// # Tree Assertions
//
// Assert on the headless tree dump:
//
//	h.ExpectContains("Text=profile")
//	h.ExpectNotContains("Route /home")
//
// # Events
//
// The harness records every store event:
//
//	for _, e := range h.Events(router.EventPhase) {
//	    t.Logf("%s %s -> %s", e.Route, e.Prev, e.Phase)
//	}
package vtest
