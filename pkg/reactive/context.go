package reactive

// Context passes a value down the owner tree without threading it through
// every component.
//
//	var ThemeContext = reactive.CreateContext("light")
//
//	// in a provider
//	ThemeContext.Provide(scope, "dark")
//
//	// in any descendant
//	theme := ThemeContext.Use(childScope) // "dark"
type Context[T any] struct {
	// key is unique per context; a pointer so two contexts never collide.
	key          *contextKey
	defaultValue T
}

type contextKey struct {
	id uint64
}

// CreateContext creates a context whose Use falls back to defaultValue when
// no ancestor provides a value.
func CreateContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{
		key:          &contextKey{id: nextID()},
		defaultValue: defaultValue,
	}
}

// Provide makes value visible to owner and its descendants.
func (c *Context[T]) Provide(owner *Owner, value T) {
	owner.SetValue(c.key, value)
}

// Use returns the value from the nearest providing ancestor, or the default.
func (c *Context[T]) Use(owner *Owner) T {
	v, ok := c.Lookup(owner)
	if !ok {
		return c.defaultValue
	}
	return v
}

// Lookup is like Use but reports whether a provider was found.
func (c *Context[T]) Lookup(owner *Owner) (T, bool) {
	if owner != nil {
		if v, ok := owner.GetValue(c.key); ok {
			if typed, ok := v.(T); ok {
				return typed, true
			}
		}
	}
	var zero T
	return zero, false
}

// Default returns the fallback value.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
