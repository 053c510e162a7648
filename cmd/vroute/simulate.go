package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/ui/clock"
	"github.com/vango-dev/vroute/pkg/ui/headless"
)

// flushLimit caps the callbacks a settle step runs.
const flushLimit = 100000

func simulateCmd() *cobra.Command {
	var (
		configPath string
		script     string
		routes     []string
		frames     int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay navigations on a virtual clock",
		Long: `Mount the configured routes on a headless tree driven by a virtual
clock, run a navigation script and print every event with its virtual time.

A script is a ';'-separated list of steps:
  nav <path>      navigate to path
  wait <duration> advance the clock, e.g. wait 150ms
  settle          run every pending timer

Examples:
  vroute simulate --script "nav /a; wait 100ms; nav /b; settle"
  vroute simulate -r /home -r /users/:id --script "nav /users/7; settle" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseScript(script)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath, routes)
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			reportConfig(cfg, logger)

			sim := newSimulation(cfg, frames, logger)
			defer sim.Close()
			sim.Run(steps)

			w := cmd.OutOrStdout()
			if asJSON {
				return sim.WriteJSON(w)
			}
			sim.WriteTimeline(w)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest vroute.toml/yaml/json)")
	cmd.Flags().StringVar(&script, "script", "settle", "Navigation script")
	cmd.Flags().StringArrayVarP(&routes, "route", "r", nil, "Extra route pattern (repeatable)")
	cmd.Flags().IntVar(&frames, "frames", 10, "Tween frames per transition")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print events as JSON lines")

	return cmd
}

// stepOp is a script instruction.
type stepOp string

const (
	opNavigate stepOp = "nav"
	opWait     stepOp = "wait"
	opSettle   stepOp = "settle"
)

// step is one parsed script instruction.
type step struct {
	Op   stepOp
	Path string
	Wait time.Duration
}

// parseScript parses "nav /a; wait 100ms; settle". Empty steps are skipped.
func parseScript(script string) ([]step, error) {
	var steps []step
	for i, raw := range strings.Split(script, ";") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}

		bad := func(format string, args ...any) error {
			return errors.New(errors.CodeScript).
				WithDetailf("step %d %q: %s", i+1, strings.TrimSpace(raw), fmt.Sprintf(format, args...))
		}

		switch op := stepOp(fields[0]); op {
		case opNavigate, "navigate":
			if len(fields) != 2 {
				return nil, bad("want nav <path>")
			}
			if !strings.HasPrefix(fields[1], "/") {
				return nil, bad("path must start with '/'")
			}
			steps = append(steps, step{Op: opNavigate, Path: fields[1]})
		case opWait:
			if len(fields) != 2 {
				return nil, bad("want wait <duration>")
			}
			d, err := time.ParseDuration(fields[1])
			if err != nil || d < 0 {
				return nil, bad("invalid duration %q", fields[1])
			}
			steps = append(steps, step{Op: opWait, Wait: d})
		case opSettle:
			if len(fields) != 1 {
				return nil, bad("settle takes no arguments")
			}
			steps = append(steps, step{Op: opSettle})
		default:
			return nil, bad("unknown step %q", op)
		}
	}
	return steps, nil
}

// timedEvent is a router event stamped with virtual time.
type timedEvent struct {
	At time.Duration
	router.Event
}

// simulation is a router mounted on a headless tree with a manual clock.
type simulation struct {
	clock  *clock.Manual
	root   *headless.Node
	scope  *reactive.Owner
	store  *router.Store
	events []timedEvent
}

func newSimulation(cfg *config.Config, frames int, logger *slog.Logger) *simulation {
	s := &simulation{
		clock: clock.NewManual(),
		root:  headless.NewRoot(),
	}

	opts := append(cfg.StoreOptions(),
		router.WithScheduler(s.clock),
		router.WithTweenService(headless.NewTweenService(s.clock, headless.WithSteps(frames))),
		router.WithLogger(logger),
		router.WithObserver(s.record),
	)
	provider := router.Provider(buildRoutes(cfg), opts...)
	s.scope = component.Mount(provider, nil, s.root)
	s.store = provider.Store()
	return s
}

func (s *simulation) record(e router.Event) {
	s.events = append(s.events, timedEvent{At: s.clock.Now(), Event: e})
}

// Run executes the steps in order.
func (s *simulation) Run(steps []step) {
	for _, st := range steps {
		switch st.Op {
		case opNavigate:
			s.store.Navigate(st.Path)
		case opWait:
			s.clock.Advance(st.Wait)
		case opSettle:
			s.clock.Flush(flushLimit)
		}
	}
}

// Close unmounts the tree.
func (s *simulation) Close() {
	s.scope.Dispose()
}

// WriteJSON writes one JSON object per event.
func (s *simulation) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, e := range s.events {
		err := enc.Encode(struct {
			AtMS int64 `json:"atMs"`
			router.Event
		}{e.At.Milliseconds(), e.Event})
		if err != nil {
			return err
		}
	}
	return nil
}

// timelineStyles styles timeline output for one writer. Colors are
// dropped when the writer is not a terminal.
type timelineStyles struct {
	time   lipgloss.Style
	kind   lipgloss.Style
	route  lipgloss.Style
	header lipgloss.Style
	phases map[router.Phase]lipgloss.Style
}

func newTimelineStyles(w io.Writer) timelineStyles {
	r := lipgloss.NewRenderer(w)
	color := func(light, dark string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}
	return timelineStyles{
		time:   color("#767676", "#8A8A8A").Width(8).Align(lipgloss.Right),
		kind:   r.NewStyle().Width(9).Bold(true),
		route:  color("#005FAF", "#5FAFFF"),
		header: r.NewStyle().Bold(true).Underline(true),
		phases: map[router.Phase]lipgloss.Style{
			router.PhaseHidden:   color("#8A8A8A", "#6C6C6C"),
			router.PhaseEntering: color("#AF8700", "#FFD75F"),
			router.PhaseVisible:  color("#008700", "#5FD75F"),
			router.PhaseExiting:  color("#AF0000", "#FF5F5F"),
		},
	}
}

func (st timelineStyles) phase(p router.Phase) string {
	if style, ok := st.phases[p]; ok {
		return style.Render(string(p))
	}
	return string(p)
}

// WriteTimeline writes the events and the final route phases.
func (s *simulation) WriteTimeline(w io.Writer) {
	st := newTimelineStyles(w)

	fmt.Fprintln(w, st.header.Render("Timeline"))
	for _, e := range s.events {
		at := st.time.Render(fmt.Sprintf("%dms", e.At.Milliseconds()))
		kind := st.kind.Render(string(e.Type))

		var detail string
		switch e.Type {
		case router.EventNavigate:
			detail = fmt.Sprintf("%s → %s", e.From, st.route.Render(e.Path))
		case router.EventPhase:
			detail = fmt.Sprintf("%s  %s → %s (gen %d)", st.route.Render(e.Route), st.phase(e.Prev), st.phase(e.Phase), e.Generation)
		case router.EventParams:
			if e.Params != nil {
				detail = e.Params.String()
			}
		default:
			detail = st.route.Render(e.Route)
		}
		fmt.Fprintf(w, "%s  %s %s\n", at, kind, detail)
	}

	snap := s.store.Snapshot()
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.header.Render("Final state"))
	info(w, "path   %s", snap.Path)
	info(w, "params %s", snap.Params.String())
	for _, r := range snap.Routes {
		info(w, "%-20s %s", r.Pattern, st.phase(r.Phase))
	}
}
