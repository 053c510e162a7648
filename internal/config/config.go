package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/transition"
)

const (
	// DefaultInitialPath is the path a freshly mounted provider starts at.
	DefaultInitialPath = "/"

	// DefaultTransition is the transition used when none is configured.
	DefaultTransition = "fade"

	// DefaultTransitionDuration is the transition length used when none is configured.
	DefaultTransitionDuration = "300ms"

	// DefaultLanguage is the language used for localized labels.
	DefaultLanguage = "en"

	// DefaultLogLevel is the minimum level logged.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the log handler format.
	DefaultLogFormat = "text"

	// DefaultServeAddr is the devtools listen address.
	DefaultServeAddr = "localhost:7070"
)

// FileNames lists the config file names Load looks for, in order.
var FileNames = []string{"vroute.toml", "vroute.yaml", "vroute.yml", "vroute.json"}

// Config is the contents of a vroute config file.
type Config struct {
	// InitialPath is the path the router starts at.
	InitialPath string `json:"initialPath,omitempty" toml:"initialPath,omitempty" yaml:"initialPath,omitempty"`

	// Transition is the provider-wide transition kind, e.g. "slide-left".
	Transition string `json:"transition,omitempty" toml:"transition,omitempty" yaml:"transition,omitempty"`

	// TransitionDuration is the provider-wide transition length, e.g. "250ms".
	TransitionDuration string `json:"transitionDuration,omitempty" toml:"transitionDuration,omitempty" yaml:"transitionDuration,omitempty"`

	// Language is the BCP 47 tag used for localized labels.
	Language string `json:"language,omitempty" toml:"language,omitempty" yaml:"language,omitempty"`

	// Routes is the route table, in render order.
	Routes []RouteConfig `json:"routes,omitempty" toml:"routes,omitempty" yaml:"routes,omitempty"`

	// Log configures the process logger.
	Log LogConfig `json:"log,omitempty" toml:"log,omitempty" yaml:"log,omitempty"`

	// Serve configures the devtools server.
	Serve ServeConfig `json:"serve,omitempty" toml:"serve,omitempty" yaml:"serve,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig declares one route.
type RouteConfig struct {
	// Path is the route pattern, e.g. "/users/:id".
	Path string `json:"path" toml:"path" yaml:"path"`

	// Label is the text rendered as the route's content.
	Label string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`

	// Transition overrides the provider transition for this route.
	Transition string `json:"transition,omitempty" toml:"transition,omitempty" yaml:"transition,omitempty"`

	// Duration overrides the provider duration for this route.
	Duration string `json:"duration,omitempty" toml:"duration,omitempty" yaml:"duration,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" toml:"format,omitempty" yaml:"format,omitempty"`
}

// ServeConfig contains devtools server settings.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		InitialPath:        DefaultInitialPath,
		Transition:         DefaultTransition,
		TransitionDuration: DefaultTransitionDuration,
		Language:           DefaultLanguage,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
	}
}

// Load reads configuration from the first of FileNames found in dir.
func Load(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		return nil, errors.New(errors.CodeConfigNotFound).
			WithDetail("No vroute config found in " + dir)
	}
	return LoadFile(path)
}

// LoadFile reads configuration from path. The format is chosen by extension.
// The result has defaults applied and has been validated.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No such file: " + path)
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		e := errors.FromError(err, errors.CodeConfigParse)
		line := 0
		var perr toml.ParseError
		if stderrors.As(err, &perr) {
			line = perr.Position.Line
		}
		return nil, e.WithLocation(path, line, 0)
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes data in the given format ("toml", "yaml" or "json"), applies
// defaults and validates the result.
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}

	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, cfg)
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, errors.New(errors.CodeConfigFormat).
			WithDetailf("Unknown format %q", format)
	}
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetailf("Failed to parse %s: %v", format, err).
			Wrap(err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case "yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Overlap names two configured routes that some path matches at once.
type Overlap struct {
	First, Second int
	Paths         [2]string
}

// Overlaps lists pairs of routes that can be matched by the same path. Both
// routes of a pair are shown together, which is allowed but usually not
// intended.
func (c *Config) Overlaps() []Overlap {
	patterns := make([]*routepath.Pattern, len(c.Routes))
	for i, rc := range c.Routes {
		p, err := routepath.Compile(rc.Path)
		if err != nil {
			return nil
		}
		patterns[i] = p
	}

	var out []Overlap
	for i := range patterns {
		for j := i + 1; j < len(patterns); j++ {
			if patterns[i].Overlaps(patterns[j]) {
				out = append(out, Overlap{
					First:  i,
					Second: j,
					Paths:  [2]string{c.Routes[i].Path, c.Routes[j].Path},
				})
			}
		}
	}
	return out
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.InitialPath == "" {
		c.InitialPath = DefaultInitialPath
	}
	if c.Transition == "" {
		c.Transition = DefaultTransition
	}
	if c.TransitionDuration == "" {
		c.TransitionDuration = DefaultTransitionDuration
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
}

// Validate checks if the configuration is valid. Every route pattern is
// compiled; the first problem found is returned.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.InitialPath, "/") {
		return errors.New(errors.CodeConfigInitialPath).
			WithDetailf("initialPath %q must start with '/'", c.InitialPath)
	}
	if _, err := parseKind(c.Transition, "transition"); err != nil {
		return err
	}
	if _, err := parseDuration(c.TransitionDuration, "transitionDuration"); err != nil {
		return err
	}
	if _, err := language.Parse(c.Language); err != nil {
		return errors.New(errors.CodeConfigLanguage).
			WithDetailf("language %q: %v", c.Language, err).
			Wrap(err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New(errors.CodeConfigLogFormat).
			WithDetailf("log.format %q", c.Log.Format)
	}

	seen := make(map[string]int, len(c.Routes))
	for i, rc := range c.Routes {
		p, err := routepath.Compile(rc.Path)
		if err != nil {
			return errors.New(errors.CodeInvalidPattern).
				WithDetailf("routes[%d]: %v", i, err).
				Wrap(err)
		}
		key := p.Canonical()
		if j, dup := seen[key]; dup {
			return errors.New(errors.CodeConfigDuplicate).
				WithDetailf("routes[%d] and routes[%d] both declare %s", j, i, key)
		}
		seen[key] = i

		if rc.Transition != "" {
			if _, err := parseKind(rc.Transition, fmt.Sprintf("routes[%d].transition", i)); err != nil {
				return err
			}
		}
		if rc.Duration != "" {
			if _, err := parseDuration(rc.Duration, fmt.Sprintf("routes[%d].duration", i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New(errors.CodeConfigLogLevel).
			WithDetailf("log.level %q", c.Log.Level).
			Wrap(err)
	}
	return level, nil
}

// Defaults returns the provider-wide transition settings.
func (c *Config) Defaults() router.Settings {
	var s router.Settings
	if k, err := transition.ParseKind(c.Transition); err == nil {
		s = s.WithKind(k)
	}
	if d, err := time.ParseDuration(c.TransitionDuration); err == nil {
		s = s.WithDuration(d)
	}
	return s
}

// StoreOptions returns the router options this config describes.
func (c *Config) StoreOptions() []router.Option {
	opts := []router.Option{
		router.WithInitialPath(c.InitialPath),
		router.WithLanguage(c.Language),
	}
	s := c.Defaults()
	if s.KindSet {
		opts = append(opts, router.WithTransition(s.Kind))
	}
	if s.DurationSet {
		opts = append(opts, router.WithTransitionDuration(s.Duration))
	}
	return opts
}

// Options returns the per-route overrides.
func (rc RouteConfig) Options() []router.RouteOption {
	var opts []router.RouteOption
	if k, err := transition.ParseKind(rc.Transition); err == nil {
		opts = append(opts, router.Transition(k))
	}
	if d, err := time.ParseDuration(rc.Duration); err == nil {
		opts = append(opts, router.Duration(d))
	}
	return opts
}

// DisplayLabel returns Label, or Path when no label is set.
func (rc RouteConfig) DisplayLabel() string {
	if rc.Label != "" {
		return rc.Label
	}
	return rc.Path
}

func parseKind(s, field string) (transition.Kind, error) {
	k, err := transition.ParseKind(s)
	if err != nil {
		return 0, errors.New(errors.CodeInvalidTransition).
			WithDetailf("%s: %q", field, s).
			Wrap(err)
	}
	return k, nil
}

func parseDuration(s, field string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New(errors.CodeInvalidDuration).
			WithDetailf("%s: %q", field, s).
			Wrap(err)
	}
	if d < 0 {
		return 0, errors.New(errors.CodeInvalidDuration).
			WithDetailf("%s: %q is negative", field, s)
	}
	return d, nil
}

// formatOf maps a file extension to a decoder name.
func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	}
	return "", errors.New(errors.CodeConfigFormat).
		WithDetail("Cannot infer the format of " + path)
}

func find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, ok := find(dir)
	return ok
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a vroute config, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No vroute config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has a config file.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
