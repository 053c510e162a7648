// Package config loads vroute config files.
//
// A config file declares a route table plus provider-wide transition
// settings, logging and the devtools listen address. Load looks for
// vroute.toml, vroute.yaml, vroute.yml and vroute.json, in that order; the
// format of a file passed to LoadFile is chosen by its extension.
//
// # Configuration File Structure
//
//	initialPath = "/home"
//	transition = "slide-left"
//	transitionDuration = "250ms"
//	language = "en"
//
//	[log]
//	level = "debug"
//	format = "text"
//
//	[serve]
//	addr = "localhost:7070"
//
//	[[routes]]
//	path = "/home"
//	label = "Home"
//
//	[[routes]]
//	path = "/users/:id"
//	transition = "fade"
//	duration = "150ms"
//
// Loaded configs have defaults applied and are validated: every pattern is
// compiled, so a malformed pattern is reported before anything is mounted.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//
//	store := router.NewStore(cfg.StoreOptions()...)
package config
