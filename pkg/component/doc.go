// Package component is the composition primitive of the presentation tree.
//
// A Component mounts nodes under a parent ui.Node and ties everything it
// allocates to a reactive.Owner scope. Disposing the scope unmounts it:
//
//	scope := component.Mount(component.Text("Hello"), parentScope, root)
//	scope.Dispose() // label destroyed
package component
