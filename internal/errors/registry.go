package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// Registered error codes.
const (
	CodeNoProvider        = "VR001"
	CodeInvalidPattern    = "VR002"
	CodeInvalidTransition = "VR003"
	CodeInvalidDuration   = "VR004"

	CodeConfigNotFound    = "VR020"
	CodeConfigParse       = "VR021"
	CodeConfigFormat      = "VR022"
	CodeConfigInitialPath = "VR023"
	CodeConfigDuplicate   = "VR024"
	CodeConfigLogLevel    = "VR025"
	CodeConfigLanguage    = "VR026"
	CodeConfigLogFormat   = "VR027"

	CodeScript        = "VR040"
	CodeServe         = "VR041"
	CodeBadNavigation = "VR042"
)

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Runtime Errors (VR001-VR019)
	// ============================================

	CodeNoProvider: {
		Category:   CategoryRuntime,
		Message:    "Route mounted outside a router provider",
		Detail:     "Route and Routes read the navigation store from an enclosing Provider. None was found above this route.",
		Suggestion: "Wrap the routed subtree in router.Provider(...)",
	},
	CodeInvalidPattern: {
		Category:   CategoryValidation,
		Message:    "Invalid route pattern",
		Detail:     "Route patterns are /-separated segments; a segment starting with ':' names a parameter. Parameter names must be non-empty and unique within a pattern.",
		Suggestion: "Use a pattern like /users/:id",
	},
	CodeInvalidTransition: {
		Category:   CategoryValidation,
		Message:    "Unknown transition",
		Detail:     "Transitions are fade, slide-left, slide-right, slide-up and slide-down.",
	},
	CodeInvalidDuration: {
		Category:   CategoryValidation,
		Message:    "Invalid transition duration",
		Detail:     "Transition durations must be zero or positive Go durations such as 300ms.",
	},

	// ============================================
	// Config Errors (VR020-VR039)
	// ============================================

	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Detail:     "No vroute.toml, vroute.yaml, vroute.yml or vroute.json was found.",
		Suggestion: "Pass a file with --config or create vroute.toml",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed.",
	},
	CodeConfigFormat: {
		Category:   CategoryConfig,
		Message:    "Unsupported config format",
		Suggestion: "Use a .toml, .yaml, .yml or .json file",
	},
	CodeConfigInitialPath: {
		Category:   CategoryConfig,
		Message:    "Invalid initial path",
		Detail:     "The initial path must start with '/'.",
	},
	CodeConfigDuplicate: {
		Category: CategoryConfig,
		Message:  "Duplicate route",
		Detail:   "Two routes in the config have the same pattern.",
	},
	CodeConfigLogLevel: {
		Category:   CategoryConfig,
		Message:    "Invalid log level",
		Suggestion: "Use one of debug, info, warn, error",
	},
	CodeConfigLanguage: {
		Category: CategoryConfig,
		Message:  "Invalid language tag",
	},
	CodeConfigLogFormat: {
		Category:   CategoryConfig,
		Message:    "Invalid log format",
		Suggestion: "Use text or json",
	},

	// ============================================
	// CLI Errors (VR040-VR059)
	// ============================================

	CodeScript: {
		Category:   CategoryCLI,
		Message:    "Invalid simulation script",
		Suggestion: `Separate steps with ';', e.g. "nav /a; wait 100ms; nav /b"`,
	},
	CodeServe: {
		Category: CategoryCLI,
		Message:  "Devtools server failed",
	},
	CodeBadNavigation: {
		Category: CategoryValidation,
		Message:  "Invalid navigation request",
		Detail:   `The request body must be a JSON object like {"path": "/users/42"}.`,
	},
}

// Register adds or replaces an error template.
func Register(code string, template Template) {
	registry[code] = template
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// GetAllCodes returns every registered code, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
