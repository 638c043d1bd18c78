// Package automap provides build-time generated, reflection-free conversion
// between record structs and generic key/value maps.
//
// A struct opts in with a directive on its declaration:
//
//	//automap:convert
//	type User struct {
//	    Name string `automap:"target=userName"`
//	    Age  int
//
//	    secret string // unexported: never mapped
//	}
//
// Running automap-gen then emits a User_MapConverter type next to the source,
// plus a per-package registry constructor and a JSON manifest of the build:
//
//	//go:generate automap-gen generate .
//
// At run time there is no scanning and no reflection over fields: the
// generated registry is built once, stays immutable, and resolves converters
// with a single map lookup keyed by the record's type.
//
//	registry := NewMapRegistry() // generated
//
//	m, err := registry.ToMap(&user)
//	u, err := automap.ToBeanOf[User](registry, m)
//
// # Field policy
//
// The automap struct tag controls per-field behavior:
//
//   - automap:"nomap" / automap:"nobean" - exclude the field from one
//     direction, independently of everything else
//   - automap:"ignore" - exclude from both directions, or from one when
//     combined with method=map or method=bean
//   - automap:"target=key" - rename the key written by ToMap. ToBean still
//     reads the field's declared name; renaming is intentionally one-way.
//
// The type directive accepts exclude=f1,f2 to suppress fields from generation
// entirely, and mapping=Other to generate the converter for a different record
// type than the one carrying the directive.
//
// Embedded structs are flattened at generation time: the outer type's fields
// come first, then each embedded type's, most-derived first. Duplicate names
// across the chain are not deduplicated.
//
// # Errors
//
// The package exposes sentinel errors (ErrConverterNotFound,
// ErrTypeConversion, ErrNilArgument, ErrInvalidConfiguration) with Is*
// classifiers; see errors.go. Lookup misses are surfaced, never defaulted.
// The one tolerated partial failure is manifest loading: a missing or broken
// manifest degrades to the full generated converter set, and an empty build
// degrades to an empty registry that answers every lookup with not-found.
//
// Add .automap/ to your .gitignore if you do not want to commit the manifest.
package automap
