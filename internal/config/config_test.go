package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/transition"
)

const tomlConfig = `
initialPath = "/home"
transition = "slide-left"
transitionDuration = "250ms"
language = "es"

[log]
level = "debug"
format = "json"

[serve]
addr = ":9000"

[[routes]]
path = "/home"
label = "Home"

[[routes]]
path = "/profile/:id"
label = "Profile"
transition = "slide-up"
duration = "1s"
`

const yamlConfig = `
initialPath: /home
transition: slide-left
transitionDuration: 250ms
language: es
log:
  level: debug
  format: json
serve:
  addr: ":9000"
routes:
  - path: /home
    label: Home
  - path: /profile/:id
    label: Profile
    transition: slide-up
    duration: 1s
`

const jsonConfig = `{
  "initialPath": "/home",
  "transition": "slide-left",
  "transitionDuration": "250ms",
  "language": "es",
  "log": {"level": "debug", "format": "json"},
  "serve": {"addr": ":9000"},
  "routes": [
    {"path": "/home", "label": "Home"},
    {"path": "/profile/:id", "label": "Profile", "transition": "slide-up", "duration": "1s"}
  ]
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.InitialPath != DefaultInitialPath {
		t.Errorf("InitialPath = %q, want %q", cfg.InitialPath, DefaultInitialPath)
	}
	if cfg.Transition != DefaultTransition {
		t.Errorf("Transition = %q, want %q", cfg.Transition, DefaultTransition)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"vroute.toml", tomlConfig},
		{"vroute.yaml", yamlConfig},
		{"vroute.yml", yamlConfig},
		{"vroute.json", jsonConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.name, tt.content)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}
			if cfg.InitialPath != "/home" {
				t.Errorf("InitialPath = %q", cfg.InitialPath)
			}
			if cfg.Transition != "slide-left" || cfg.TransitionDuration != "250ms" {
				t.Errorf("transition = %q %q", cfg.Transition, cfg.TransitionDuration)
			}
			if cfg.Language != "es" {
				t.Errorf("Language = %q", cfg.Language)
			}
			if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
				t.Errorf("Log = %+v", cfg.Log)
			}
			if cfg.Serve.Addr != ":9000" {
				t.Errorf("Serve.Addr = %q", cfg.Serve.Addr)
			}
			if len(cfg.Routes) != 2 {
				t.Fatalf("expected 2 routes, got %d", len(cfg.Routes))
			}
			want := RouteConfig{Path: "/profile/:id", Label: "Profile", Transition: "slide-up", Duration: "1s"}
			if cfg.Routes[1] != want {
				t.Errorf("Routes[1] = %+v, want %+v", cfg.Routes[1], want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if errors.Code(err) != errors.CodeConfigNotFound {
		t.Errorf("Code = %q, want %q", errors.Code(err), errors.CodeConfigNotFound)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if errors.Code(err) != errors.CodeConfigNotFound {
		t.Errorf("LoadFile code = %q, want %q", errors.Code(err), errors.CodeConfigNotFound)
	}
}

func TestLoadPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vroute.json", `{"initialPath": "/json"}`)
	writeFile(t, dir, "vroute.toml", `initialPath = "/toml"`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InitialPath != "/toml" {
		t.Errorf("InitialPath = %q, want /toml", cfg.InitialPath)
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vroute.ini", "x=1")

	_, err := LoadFile(path)
	if errors.Code(err) != errors.CodeConfigFormat {
		t.Errorf("Code = %q, want %q", errors.Code(err), errors.CodeConfigFormat)
	}
}

func TestLoadFile_InvalidSyntax(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"vroute.json", `{invalid json}`},
		{"vroute.toml", "initialPath = \n"},
		{"vroute.yaml", "routes: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.name, tt.content)

			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("Expected error for invalid syntax")
			}
			e := errors.FromError(err, "")
			if e.Code != errors.CodeConfigParse {
				t.Errorf("Code = %q, want %q", e.Code, errors.CodeConfigParse)
			}
			if e.Location == nil || e.Location.File != path {
				t.Errorf("Location = %v, want file %q", e.Location, path)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"routes": [{"path": "/a"}]}`), "json")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.InitialPath != "/" {
		t.Errorf("InitialPath = %q, want /", cfg.InitialPath)
	}
	if cfg.TransitionDuration != DefaultTransitionDuration {
		t.Errorf("TransitionDuration = %q", cfg.TransitionDuration)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if cfg.Routes[0].DisplayLabel() != "/a" {
		t.Errorf("DisplayLabel() = %q, want /a", cfg.Routes[0].DisplayLabel())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"relative initial path", func(c *Config) { c.InitialPath = "home" }, errors.CodeConfigInitialPath},
		{"unknown transition", func(c *Config) { c.Transition = "spin" }, errors.CodeInvalidTransition},
		{"unparsable duration", func(c *Config) { c.TransitionDuration = "soon" }, errors.CodeInvalidDuration},
		{"negative duration", func(c *Config) { c.TransitionDuration = "-1s" }, errors.CodeInvalidDuration},
		{"bad language", func(c *Config) { c.Language = "!!" }, errors.CodeConfigLanguage},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, errors.CodeConfigLogLevel},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, errors.CodeConfigLogFormat},
		{"empty param name", func(c *Config) {
			c.Routes = []RouteConfig{{Path: "/users/:"}}
		}, errors.CodeInvalidPattern},
		{"duplicate param", func(c *Config) {
			c.Routes = []RouteConfig{{Path: "/a/:id/b/:id"}}
		}, errors.CodeInvalidPattern},
		{"duplicate route", func(c *Config) {
			c.Routes = []RouteConfig{{Path: "/a/b"}, {Path: "a//b/"}}
		}, errors.CodeConfigDuplicate},
		{"route transition", func(c *Config) {
			c.Routes = []RouteConfig{{Path: "/a", Transition: "bogus"}}
		}, errors.CodeInvalidTransition},
		{"route duration", func(c *Config) {
			c.Routes = []RouteConfig{{Path: "/a", Duration: "-5ms"}}
		}, errors.CodeInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if got := errors.Code(err); got != tt.code {
				t.Errorf("Code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateReportsRouteIndex(t *testing.T) {
	cfg := New()
	cfg.Routes = []RouteConfig{{Path: "/ok"}, {Path: "/x", Transition: "nope"}}

	err := cfg.Validate()
	e := errors.FromError(err, "")
	if !strings.Contains(e.Detail, "routes[1].transition") {
		t.Errorf("Detail = %q, should name routes[1]", e.Detail)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			cfg.InitialPath = "/start"
			cfg.Routes = []RouteConfig{
				{Path: "/start", Label: "Start"},
				{Path: "/items/:id", Transition: "slide-down", Duration: "120ms"},
			}

			path := filepath.Join(t.TempDir(), name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q after SaveTo", cfg.Path())
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if loaded.InitialPath != "/start" {
				t.Errorf("InitialPath = %q", loaded.InitialPath)
			}
			if len(loaded.Routes) != 2 || loaded.Routes[1] != cfg.Routes[1] {
				t.Errorf("Routes = %+v", loaded.Routes)
			}
			if loaded.Serve.Addr != DefaultServeAddr {
				t.Errorf("Serve.Addr = %q", loaded.Serve.Addr)
			}
		})
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestLogLevel(t *testing.T) {
	cfg := New()
	cfg.Log.Level = "warn"

	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatal(err)
	}
	if level.String() != "WARN" {
		t.Errorf("LogLevel() = %v, want WARN", level)
	}
}

func TestStoreOptions(t *testing.T) {
	cfg, err := Parse([]byte(tomlConfig), "toml")
	if err != nil {
		t.Fatal(err)
	}

	s := router.NewStore(cfg.StoreOptions()...)
	if s.Path() != "/home" {
		t.Errorf("Path() = %q, want /home", s.Path())
	}
	kind, d := s.Defaults().Resolved()
	if kind != transition.SlideLeft || d != 250*time.Millisecond {
		t.Errorf("Defaults() = %v %v", kind, d)
	}

	if n := len(cfg.Routes[0].Options()); n != 0 {
		t.Errorf("Routes[0].Options() has %d options, want 0", n)
	}
	if n := len(cfg.Routes[1].Options()); n != 2 {
		t.Errorf("Routes[1].Options() has %d options, want 2", n)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists() should be false for empty dir")
	}
	writeFile(t, dir, "vroute.yml", "initialPath: /\n")
	if !Exists(dir) {
		t.Error("Exists() should be true after creating vroute.yml")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "vroute.toml", "")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	// t.TempDir may return a symlinked path on some systems
	wantAbs, _ := filepath.EvalSymlinks(root)
	gotAbs, _ := filepath.EvalSymlinks(found)
	if gotAbs != wantAbs {
		t.Errorf("FindProjectRoot() = %q, want %q", found, root)
	}
}

func TestOverlaps(t *testing.T) {
	cfg := New()
	cfg.Routes = []RouteConfig{
		{Path: "/users/:id"},
		{Path: "/users/new"},
		{Path: "/about"},
		{Path: "/:page"},
		{Path: "/users/:id/posts"},
	}

	got := cfg.Overlaps()
	want := []Overlap{
		{First: 0, Second: 1, Paths: [2]string{"/users/:id", "/users/new"}},
		{First: 2, Second: 3, Paths: [2]string{"/about", "/:page"}},
	}
	if len(got) != len(want) {
		t.Fatalf("Overlaps() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Overlaps()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	cfg.Routes = []RouteConfig{{Path: "/a"}, {Path: "/b"}}
	if got := cfg.Overlaps(); len(got) != 0 {
		t.Errorf("Overlaps() = %+v, want none", got)
	}
}
