package automap

import "reflect"

// ToMapOf flattens a typed record through the registry.
func ToMapOf[T any](r *Registry, entity *T) (map[string]any, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if entity == nil {
		// Resolve the converter anyway so an unregistered type still reports
		// not-found rather than silently producing an empty map.
		c, err := r.Converter(t)
		if err != nil {
			return nil, err
		}
		return c.ToMap(nil)
	}
	return r.ToMapAs(entity, t)
}

// ToBeanOf constructs a typed record from data through the registry.
func ToBeanOf[T any](r *Registry, data map[string]any) (*T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	bean, err := r.ToBean(data, t)
	if err != nil {
		return nil, err
	}
	typed, ok := bean.(*T)
	if !ok {
		return nil, NewTypeConversionError("bean", "*"+t.Name(), reflect.TypeOf(bean).String())
	}
	return typed, nil
}

// ExistsFor reports whether a converter is registered for T.
func ExistsFor[T any](r *Registry) bool {
	return r.Exists(reflect.TypeOf((*T)(nil)).Elem())
}
