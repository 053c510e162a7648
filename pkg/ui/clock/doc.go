// Package clock provides ui.Scheduler implementations.
//
// Manual is a virtual clock: nothing happens until Advance is called, which
// makes transition timing deterministic in tests. Loop is a real event loop
// that serializes dispatched work and timer callbacks onto one goroutine,
// recovering panics and reporting them to a fault handler.
package clock
