package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/devtools"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/ui/clock"
	"github.com/vango-dev/vroute/pkg/ui/headless"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		routes     []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the routes live behind the devtools inspector",
		Long: `Mount the configured routes on a real event loop and serve the
devtools inspector.

Endpoints:
  GET  /healthz
  GET  /api/state
  POST /api/navigate   {"path": "/users/42"}
  GET  /api/match      ?pattern=&path=
  GET  /ws             live event stream
  GET  /metrics

Examples:
  vroute serve
  vroute serve -c vroute.yaml --addr :7070`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, routes)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cfg, cmd.ErrOrStderr())
			reportConfig(cfg, logger)
			w := cmd.OutOrStdout()
			printBanner(w)
			success(w, "Serving %d routes on http://%s", len(cfg.Routes), cfg.Serve.Addr)
			info(w, "Press Ctrl+C to stop")
			fmt.Fprintln(w)

			return serve(ctx, cfg.Serve.Addr, logger, func(opts ...router.Option) *router.ProviderComponent {
				return router.Provider(buildRoutes(cfg), append(cfg.StoreOptions(), opts...)...)
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest vroute.toml/yaml/json)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringArrayVarP(&routes, "route", "r", nil, "Extra route pattern (repeatable)")

	return cmd
}

// serve mounts the provider built by newProvider on a loop and serves
// devtools until ctx is done.
func serve(ctx context.Context, addr string, logger *slog.Logger, newProvider func(...router.Option) *router.ProviderComponent) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loop := clock.NewLoop(
		clock.WithLogger(logger),
		clock.WithFaultHandler(func(recovered any, stack []byte) {
			logger.Error("router fault", "panic", recovered)
		}),
	)
	defer loop.Close()

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go func() { _ = loop.Run(loopCtx) }()

	provider := newProvider(
		router.WithScheduler(loop),
		router.WithTweenService(headless.NewTweenService(loop)),
		router.WithLogger(logger),
		router.WithMetrics(router.NewMetrics(reg)),
	)

	var scope *reactive.Owner
	if err := loop.Do(ctx, func() {
		scope = component.Mount(provider, nil, headless.NewRoot())
	}); err != nil {
		return errors.New(errors.CodeServe).WithDetail("mounting routes").Wrap(err)
	}
	defer func() {
		_ = loop.Do(context.Background(), scope.Dispose)
	}()

	srv := devtools.New(devtools.Options{
		Store:      provider.Store(),
		Loop:       loop,
		Gatherer:   reg,
		Registerer: reg,
		Logger:     logger,
	})
	defer srv.Close()

	return srv.ListenAndServe(ctx, addr)
}
