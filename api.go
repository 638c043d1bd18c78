package automap

import (
	"fmt"
	"reflect"
	"strings"
)

// ToMap flattens source into a map using the converter registered for its
// runtime type. A nil source yields a nil map and no error ("nil in, nil out");
// an unregistered type fails with ErrConverterNotFound.
func (r *Registry) ToMap(source any) (map[string]any, error) {
	if source == nil {
		return nil, nil
	}
	return r.ToMapAs(source, reflect.TypeOf(source))
}

// ToMapAs flattens source using the converter registered for the explicitly
// supplied type. Useful when source is held as an interface whose runtime type
// differs from the registered record type.
func (r *Registry) ToMapAs(source any, t reflect.Type) (map[string]any, error) {
	if t == nil {
		return nil, NewNilArgumentError("target type")
	}
	c, err := r.Converter(t)
	if err != nil {
		return nil, err
	}
	return c.ToMap(source)
}

// ToBean constructs a record of type t from data. A nil target type fails with
// ErrNilArgument; empty or nil data yields a default-constructed record.
func (r *Registry) ToBean(data map[string]any, t reflect.Type) (any, error) {
	c, err := r.Converter(t)
	if err != nil {
		return nil, err
	}
	return c.ToBean(data)
}

// ToMapList applies ToMap element-wise, preserving order. It fails eagerly on
// the first failing element, with the element index added for context. A nil
// slice yields a nil result and no error.
func (r *Registry) ToMapList(sources []any) ([]map[string]any, error) {
	if sources == nil {
		return nil, nil
	}
	out := make([]map[string]any, 0, len(sources))
	for i, source := range sources {
		m, err := r.ToMap(source)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ToBeanList applies ToBean element-wise, preserving order, failing eagerly on
// the first failing element. A nil target type fails with ErrNilArgument; a
// nil slice yields a nil result and no error.
func (r *Registry) ToBeanList(data []map[string]any, t reflect.Type) ([]any, error) {
	if t == nil {
		return nil, NewNilArgumentError("target type")
	}
	if data == nil {
		return nil, nil
	}
	out := make([]any, 0, len(data))
	for i, m := range data {
		bean, err := r.ToBean(m, t)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, bean)
	}
	return out, nil
}

// ConvertName returns the conventional converter name for a record type, e.g.
// User -> "User_MapConverter". Returns "" for a nil type.
func ConvertName(t reflect.Type) string {
	t = normalizeType(t)
	if t == nil {
		return ""
	}
	return t.Name() + ConverterSuffix
}

// ConvertNameOf returns the conventional converter name for a record type's
// simple name. Blank in, blank out.
func ConvertNameOf(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return name + ConverterSuffix
}
