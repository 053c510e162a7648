// Package ui defines the presentation layer the router renders into.
//
// The router never talks to a concrete toolkit. It needs three services:
//
//   - Node: a container that holds child nodes, carries properties such as
//     Position or BackgroundTransparency, and emits events such as Activated;
//   - TweenService: interpolates a node's properties toward target values
//     over a duration and hands back a cancellable Tween;
//   - Scheduler: runs a callback after a delay on the UI loop.
//
// The headless subpackage implements Node and TweenService in memory, and
// the clock subpackage provides a virtual-time Scheduler for tests and a
// real single-goroutine event loop for live use.
package ui
