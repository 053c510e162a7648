// Package errors provides structured, actionable error messages for vroute.
//
// Every error carries a code (e.g. "VR002") that maps to a registered
// template with a short message, a longer explanation and, where one
// exists, a fix suggestion. Config errors can also point at the offending
// file and line, and pattern errors underline the offending segment.
//
// # Error Categories
//
//   - runtime: misuse of the router at mount time (route outside a provider)
//   - validation: bad patterns, transitions, durations and requests
//   - config: config file loading and validation
//   - cli: command line failures
//
// # Usage
//
//	_, cerr := routepath.Compile("/users/:")
//	err := errors.New(errors.CodeInvalidPattern).
//	    WithSuggestion("Name the parameter, e.g. /users/:id").
//	    Wrap(cerr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR VR002: Invalid route pattern
//	//
//	//   /users/:
//	//          ^ parameter segment has no name
//	//
//	//   Hint: Name the parameter, e.g. /users/:id
package errors
