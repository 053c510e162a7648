package headless

import (
	"time"

	"github.com/vango-dev/vroute/pkg/ui"
)

// TweenService is an in-memory ui.TweenService driven by a ui.Scheduler.
//
// A played tween moves numeric and UDim2 properties linearly from their
// values at Play time to the targets in Steps equal frames, then sets the
// exact targets and runs its completion callbacks. Other property types jump
// to the target on the final frame.
type TweenService struct {
	sched  ui.Scheduler
	steps  int
	record bool

	created []*Tween
}

// TweenOption configures a TweenService.
type TweenOption func(*TweenService)

// WithSteps sets the number of frames per tween. Values below 1 mean 1.
func WithSteps(n int) TweenOption {
	return func(s *TweenService) {
		if n < 1 {
			n = 1
		}
		s.steps = n
	}
}

// WithRecording keeps every created tween for inspection through Created.
// Recorded tweens are never released, so only test harnesses enable it.
func WithRecording() TweenOption {
	return func(s *TweenService) {
		s.record = true
	}
}

// NewTweenService creates a tween service scheduling frames on sched.
func NewTweenService(sched ui.Scheduler, opts ...TweenOption) *TweenService {
	s := &TweenService{sched: sched, steps: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements ui.TweenService.
func (s *TweenService) Create(target ui.Node, d time.Duration, props ui.Props) ui.Tween {
	t := &Tween{
		service:  s,
		Target:   target,
		Duration: d,
		Props:    props.Clone(),
	}
	if s.record {
		s.created = append(s.created, t)
	}
	return t
}

// Created returns every tween created so far, oldest first. It is empty
// unless the service was built WithRecording.
func (s *TweenService) Created() []*Tween {
	return append([]*Tween(nil), s.created...)
}

// TweenState is the lifecycle stage of a Tween.
type TweenState uint8

const (
	TweenIdle TweenState = iota
	TweenPlaying
	TweenCompleted
	TweenCancelled
)

// String returns the state name.
func (s TweenState) String() string {
	switch s {
	case TweenIdle:
		return "idle"
	case TweenPlaying:
		return "playing"
	case TweenCompleted:
		return "completed"
	case TweenCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Tween is the handle returned by TweenService.Create.
type Tween struct {
	service *TweenService

	// Target, Duration and Props are the creation arguments.
	Target   ui.Node
	Duration time.Duration
	Props    ui.Props

	state     TweenState
	destroyed bool
	start     ui.Props
	frame     int
	timer     ui.Timer
	completed []func()
}

// State returns the lifecycle stage.
func (t *Tween) State() TweenState { return t.state }

// IsDestroyed reports whether Destroy was called.
func (t *Tween) IsDestroyed() bool { return t.destroyed }

// Play implements ui.Tween.
func (t *Tween) Play() {
	if t.state != TweenIdle || t.destroyed {
		return
	}
	t.state = TweenPlaying
	t.start = make(ui.Props, len(t.Props))
	for k := range t.Props {
		if v, ok := t.Target.Get(k); ok {
			t.start[k] = v
		}
	}
	t.scheduleFrame()
}

func (t *Tween) scheduleFrame() {
	steps := t.service.steps
	interval := t.Duration / time.Duration(steps)
	t.timer = t.service.sched.Delay(interval, t.step)
}

func (t *Tween) step() {
	if t.state != TweenPlaying {
		return
	}
	t.frame++
	steps := t.service.steps
	if t.frame < steps {
		alpha := float64(t.frame) / float64(steps)
		t.Target.Set(interpolate(t.start, t.Props, alpha))
		t.scheduleFrame()
		return
	}

	t.Target.Set(t.Props)
	t.state = TweenCompleted
	t.timer = nil
	callbacks := t.completed
	t.completed = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Cancel implements ui.Tween.
func (t *Tween) Cancel() {
	if t.state != TweenPlaying && t.state != TweenIdle {
		return
	}
	t.state = TweenCancelled
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.completed = nil
}

// OnCompleted implements ui.Tween.
func (t *Tween) OnCompleted(fn func()) {
	if t.state == TweenCompleted {
		fn()
		return
	}
	t.completed = append(t.completed, fn)
}

// Destroy implements ui.Tween.
func (t *Tween) Destroy() {
	t.Cancel()
	t.destroyed = true
}

// interpolate blends start toward target. Properties without a start value
// or of a type that cannot be blended keep their start value until the last
// frame.
func interpolate(start, target ui.Props, alpha float64) ui.Props {
	out := make(ui.Props, len(target))
	for k, to := range target {
		from, ok := start[k]
		if !ok {
			continue
		}
		switch tv := to.(type) {
		case float64:
			if fv, ok := from.(float64); ok {
				out[k] = fv + (tv-fv)*alpha
			}
		case ui.UDim2:
			if fv, ok := from.(ui.UDim2); ok {
				out[k] = fv.Lerp(tv, alpha)
			}
		}
	}
	return out
}
