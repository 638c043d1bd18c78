package codegen

import "strings"

// Policy is the resolved per-field decision governing code generation: whether
// the field participates in each direction, and under which key it is written
// by toMap. toBean always reads the field's declared name; the rename applies
// to the toMap side only.
type Policy struct {
	IncludeToMap  bool
	IncludeToBean bool
	MapKey        string
}

// ResolvePolicy computes a field's policy against the type-level exclude list.
// Each direction is decided independently:
//
//  1. a direction-specific exclude (nomap/nobean) wins outright,
//  2. then ignore, scoped by method=,
//  3. then the type-level exclude list,
//  4. otherwise the field is included.
func ResolvePolicy(f FieldDecl, typeExclude []string) Policy {
	p := Policy{
		IncludeToMap:  includeFor(f, DirectionToMap, typeExclude),
		IncludeToBean: includeFor(f, DirectionToBean, typeExclude),
		MapKey:        f.Name,
	}
	if p.IncludeToMap && strings.TrimSpace(f.Tag.Target) != "" {
		p.MapKey = f.Tag.Target
	}
	return p
}

func includeFor(f FieldDecl, dir Direction, typeExclude []string) bool {
	switch dir {
	case DirectionToMap:
		if f.Tag.NoMap {
			return false
		}
	case DirectionToBean:
		if f.Tag.NoBean {
			return false
		}
	}
	if f.Tag.Ignore && (f.Tag.Method == DirectionBoth || f.Tag.Method == dir) {
		return false
	}
	for _, name := range typeExclude {
		if name == f.Name {
			return false
		}
	}
	return true
}
