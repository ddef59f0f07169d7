package param

import "fmt"

// Registry is an immutable catalog of parameters indexed by normalised name.
type Registry struct {
	name   string
	params []Parameter
	index  map[string]Parameter
}

// NewRegistry builds a registry. Two parameters whose names normalise to
// the same key are rejected.
func NewRegistry(name string, params ...Parameter) (*Registry, error) {
	r := &Registry{
		name:   name,
		params: make([]Parameter, 0, len(params)),
		index:  make(map[string]Parameter, len(params)),
	}
	for _, p := range params {
		if p.IsZero() {
			return nil, fmt.Errorf("registry %s: zero parameter", name)
		}
		key := Normalize(p.name)
		if existing, dup := r.index[key]; dup {
			return nil, fmt.Errorf("registry %s: %s collides with %s", name, p.name, existing.name)
		}
		r.index[key] = p
		r.params = append(r.params, p)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
// Use only for static catalogs.
func MustNewRegistry(name string, params ...Parameter) *Registry {
	r, err := NewRegistry(name, params...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the registry name, e.g. "occurrence".
func (r *Registry) Name() string { return r.name }

// Lookup resolves a parameter by name, ignoring case and separators.
func (r *Registry) Lookup(name string) (Parameter, bool) {
	p, ok := r.index[Normalize(name)]
	return p, ok
}

// MustLookup is like Lookup but panics when the name is unknown.
func (r *Registry) MustLookup(name string) Parameter {
	p, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("registry %s: unknown parameter %q", r.name, name))
	}
	return p
}

// ValueType returns the declared type of the named parameter.
func (r *Registry) ValueType(name string) (ValueType, bool) {
	p, ok := r.Lookup(name)
	if !ok {
		return 0, false
	}
	return p.valueType, true
}

// All returns the parameters in catalog order.
func (r *Registry) All() []Parameter {
	out := make([]Parameter, len(r.params))
	copy(out, r.params)
	return out
}

// Len returns the number of parameters.
func (r *Registry) Len() int { return len(r.params) }
