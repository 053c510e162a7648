package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/internal/logging"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/router"
)

// loadConfig reads the config at path, or the nearest one above the working
// directory when path is empty. Extra route patterns are appended and the
// result is validated again. With extra routes and no config file the
// defaults are used.
func loadConfig(path string, extra []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.Code(err) == errors.CodeConfigNotFound && len(extra) > 0 {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	for _, p := range extra {
		cfg.Routes = append(cfg.Routes, config.RouteConfig{Path: p})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the config's log section.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		Writer: w,
	})
}

// reportConfig logs where the config came from and warns about routes that
// are shown together for the same path.
func reportConfig(cfg *config.Config, logger *slog.Logger) {
	source := cfg.Path()
	if source == "" {
		source = "defaults"
	}
	logger.Debug("config loaded", "source", source, "routes", len(cfg.Routes))

	for _, o := range cfg.Overlaps() {
		logger.Warn("routes overlap",
			"first", o.Paths[0],
			"second", o.Paths[1],
			"index", fmt.Sprintf("routes[%d], routes[%d]", o.First, o.Second))
	}
}

// buildRoutes turns the config's route table into a Routes component. Each
// route renders its label.
func buildRoutes(cfg *config.Config) *router.RoutesComponent {
	routes := make([]component.Component, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		routes = append(routes, router.Route(rc.Path, component.Text(rc.DisplayLabel()), rc.Options()...))
	}
	return router.Routes(routes...)
}
