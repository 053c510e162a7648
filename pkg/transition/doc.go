// Package transition is the catalog of enter/exit effects for routes.
//
// Each Kind maps to an immutable Config of three styles:
//
//	kind         initial          animate          exit
//	fade         -                bg=0 image=0     bg=1 image=1
//	slide-left   position (1,0)   position (0,0)   position (-1,0)
//	slide-right  position (-1,0)  position (0,0)   position (1,0)
//	slide-up     position (0,1)   position (0,0)   position (0,-1)
//	slide-down   position (0,-1)  position (0,0)   position (0,1)
//
// Positions are scale values relative to the parent container. A route
// container is created at Config.Start, tweened to Animate while its route
// matches, and tweened to Exit once the match is lost.
package transition
