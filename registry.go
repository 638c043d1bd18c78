package automap

import (
	"reflect"
	"sort"
)

// Registry is an immutable mapping from record types to live converter
// instances. It is built exactly once, never mutated afterward, and therefore
// safe for unsynchronized concurrent reads.
//
// The lookup key is the converter's declared target type as reported by
// Converter.Target, not the source type recorded in the build manifest. This
// keeps lookups robust to the mapping redirect feature, where the manifest's
// key may name a different type than the one the converter actually maps.
type Registry struct {
	converters map[reflect.Type]Converter
}

// Build constructs a Registry from the given converters. Nil converters and
// converters without a target type are dropped. When two converters resolve to
// the same target type, the first one wins and later ones are discarded
// silently.
func Build(convs ...Converter) *Registry {
	m := make(map[reflect.Type]Converter, len(convs))
	for _, c := range convs {
		if c == nil {
			continue
		}
		t := normalizeType(c.Target())
		if t == nil {
			continue
		}
		if _, dup := m[t]; dup {
			continue
		}
		m[t] = c
	}
	return &Registry{converters: m}
}

// Load builds a Registry from the given converters, cross-checked against the
// build manifest at manifestPath. Converters whose generated type name appears
// among the manifest's values are registered; if the manifest is absent, blank,
// or unreadable, Load degrades gracefully to Build with the full converter set.
// With no converters at all the result is an empty, usable registry: lookups
// report not-found instead of the process failing at startup.
func Load(manifestPath string, convs ...Converter) *Registry {
	manifest, err := LoadManifest(manifestPath)
	if err != nil || len(manifest) == 0 {
		return Build(convs...)
	}

	names := manifest.ConverterNames()
	keep := make([]Converter, 0, len(convs))
	for _, c := range convs {
		if c == nil {
			continue
		}
		if _, ok := names[converterTypeName(c)]; ok {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		return Build(convs...)
	}
	return Build(keep...)
}

// lookup returns the converter for t, normalizing pointer types to their
// element type.
func (r *Registry) lookup(t reflect.Type) (Converter, bool) {
	c, ok := r.converters[normalizeType(t)]
	return c, ok
}

// Exists reports whether a converter is registered for t. It is a pure lookup:
// it never errors and accepts a nil type.
func (r *Registry) Exists(t reflect.Type) bool {
	if t == nil {
		return false
	}
	_, ok := r.lookup(t)
	return ok
}

// Converter returns the registered converter for t.
func (r *Registry) Converter(t reflect.Type) (Converter, error) {
	if t == nil {
		return nil, NewNilArgumentError("target type")
	}
	c, ok := r.lookup(t)
	if !ok {
		return nil, NewConverterNotFoundError(typeName(t))
	}
	return c, nil
}

// Converters returns a copy of the registered type-to-converter mapping. The
// copy is defensive; mutating it does not affect the registry.
func (r *Registry) Converters() map[reflect.Type]Converter {
	out := make(map[reflect.Type]Converter, len(r.converters))
	for t, c := range r.converters {
		out[t] = c
	}
	return out
}

// RegisteredTypes returns the names of all registered record types, sorted.
// Intended for diagnostics.
func (r *Registry) RegisteredTypes() []string {
	names := make([]string, 0, len(r.converters))
	for t := range r.converters {
		names = append(names, typeName(t))
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	return len(r.converters)
}

func normalizeType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	t = normalizeType(t)
	if t == nil {
		return "<nil>"
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.String()
}

// converterTypeName returns the simple type name of a converter value, e.g.
// "User_MapConverter". Used to match live converters against manifest entries.
func converterTypeName(c Converter) string {
	t := reflect.TypeOf(c)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
