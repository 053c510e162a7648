package router

import (
	"github.com/vango-dev/vroute/pkg/routepath"
)

// EventType identifies what an Event reports.
type EventType string

const (
	// EventNavigate is emitted when Navigate is called, before any route
	// re-evaluates.
	EventNavigate EventType = "navigate"

	// EventPhase is emitted when a route changes phase.
	EventPhase EventType = "phase"

	// EventParams is emitted when a match changes the params snapshot.
	EventParams EventType = "params"

	// EventMount and EventUnmount bracket a route controller's life.
	EventMount   EventType = "mount"
	EventUnmount EventType = "unmount"
)

// Event is delivered to store observers.
type Event struct {
	// Seq increases by one per event emitted by a store.
	Seq  uint64    `json:"seq"`
	Type EventType `json:"type"`

	// Path is the current path after the event.
	Path string `json:"path"`

	// From is the previous path of a navigate event.
	From string `json:"from,omitempty"`

	// Route is the pattern of the route a phase, mount or unmount event is
	// about.
	Route string `json:"route,omitempty"`

	Phase      Phase  `json:"phase,omitempty"`
	Prev       Phase  `json:"prev,omitempty"`
	Generation uint64 `json:"generation,omitempty"`

	// Params is set on params events.
	Params *routepath.Params `json:"params,omitempty"`
}

type observer struct {
	id uint64
	fn func(Event)
}
