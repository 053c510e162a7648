// Package headless implements the ui presentation contracts in memory.
//
// It backs the test harness and the CLI simulator: nodes keep their
// properties in a map, events are fired explicitly with Node.Fire, and tweens
// advance on whatever ui.Scheduler they are given, usually a clock.Manual.
package headless
