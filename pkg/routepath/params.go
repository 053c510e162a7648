package routepath

import (
	"encoding/json"
	"sort"
	"strings"
)

// Params is an immutable mapping from parameter name to captured value.
//
// The zero value is an empty mapping. Operations that change the mapping
// return a new Params and leave the receiver untouched, so a Params value can
// be shared between readers without copying.
type Params struct {
	m map[string]string
}

// NewParams builds a Params from a plain map. The map is copied.
func NewParams(m map[string]string) Params {
	if len(m) == 0 {
		return Params{}
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Params{m: cp}
}

// Get returns the value bound to name.
func (p Params) Get(name string) (string, bool) {
	v, ok := p.m[name]
	return v, ok
}

// Value returns the value bound to name, or "" when unbound.
func (p Params) Value(name string) string {
	return p.m[name]
}

// Has reports whether name is bound.
func (p Params) Has(name string) bool {
	_, ok := p.m[name]
	return ok
}

// Len returns the number of bindings.
func (p Params) Len() int {
	return len(p.m)
}

// Keys returns the bound names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the bindings as a plain map.
func (p Params) Map() map[string]string {
	cp := make(map[string]string, len(p.m))
	for k, v := range p.m {
		cp[k] = v
	}
	return cp
}

// Merge returns a new Params holding the receiver's bindings overwritten
// key-by-key by other's. Keys absent from other are kept.
func (p Params) Merge(other Params) Params {
	if other.Len() == 0 {
		return p
	}
	merged := make(map[string]string, len(p.m)+len(other.m))
	for k, v := range p.m {
		merged[k] = v
	}
	for k, v := range other.m {
		merged[k] = v
	}
	return Params{m: merged}
}

// Equal reports whether both mappings hold the same bindings.
func (p Params) Equal(other Params) bool {
	if len(p.m) != len(other.m) {
		return false
	}
	for k, v := range p.m {
		if ov, ok := other.m[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders the bindings as {a=1, b=2} in key order.
func (p Params) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p.m[k])
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the bindings as a JSON object.
func (p Params) MarshalJSON() ([]byte, error) {
	if p.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.m)
}
