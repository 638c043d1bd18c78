package automap

import "reflect"

// Converter is the contract every generated converter satisfies for exactly one
// record type. Implementations are produced by automap-gen; they are stateless
// value types safe for concurrent use.
type Converter interface {
	// Target reports the record type this converter maps. For a converter
	// generated with a mapping redirect, Target is the redirect target, not the
	// type that carried the directive.
	Target() reflect.Type

	// ToMap flattens entity into a freshly allocated map, one entry per
	// included field in declaration order (outer type first, then embedded
	// types). A nil entity yields an empty, non-nil map.
	ToMap(entity any) (map[string]any, error)

	// ToBean constructs a new record from data. Empty or nil data yields a
	// default-constructed record, never nil. Values are checked against each
	// field's declared type; a mismatch fails with ErrTypeConversion.
	ToBean(data map[string]any) (any, error)
}

// ConverterSuffix is appended to a record type's simple name to form the name
// of its generated converter, e.g. User -> User_MapConverter.
const ConverterSuffix = "_MapConverter"
