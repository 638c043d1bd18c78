package codegen

// Direction identifies which side(s) of the conversion a field policy applies
// to.
type Direction int

const (
	DirectionBoth Direction = iota
	DirectionToMap
	DirectionToBean
)

func (d Direction) String() string {
	switch d {
	case DirectionToMap:
		return "map"
	case DirectionToBean:
		return "bean"
	default:
		return "both"
	}
}

// TagOptions is the parsed form of a field's automap struct tag.
type TagOptions struct {
	// Direction-specific excludes. Independent of everything else and of each
	// other; either or both may be set.
	NoMap  bool
	NoBean bool

	// Generic policy marker.
	Ignore bool
	Method Direction
	Target string

	// Problems collects options the parser did not understand; surfaced by
	// validation, never fatal at parse time.
	Problems []string
}

// FieldDecl is one entry of a record type's flattened field list.
type FieldDecl struct {
	Name string
	// Type is the field's declared type in source syntax, e.g. "*uuid.UUID".
	Type string
	// Path is the selector path from the record root, e.g. "Audit.CreatedBy"
	// for a field reached through an embedded struct. Equal to Name for the
	// outer type's own fields.
	Path string
	// Owner is the type that declares the field.
	Owner string
	// HasTag reports whether the field carried an automap tag at all.
	HasTag bool
	Tag    TagOptions
}

// TypeDecl is a scanned record type carrying the convert directive, with its
// ancestor chain already flattened into one ordered field list.
type TypeDecl struct {
	PackageName string
	ImportPath  string
	SourceFile  string

	// Name is the type that carried the directive. Target is the type the
	// converter actually maps: the mapping redirect when one was declared,
	// otherwise Name itself.
	Name    string
	Mapping string

	// Exclude is the type-level exclude list from the directive site.
	Exclude []string

	// Fields is the flattened field list of the target type: its own fields in
	// declaration order first, then each embedded struct's fields, most-derived
	// to least-derived. Unexported fields are already skipped; duplicate names
	// across the chain are not deduplicated.
	Fields []FieldDecl

	// Problems collects directive-level issues found during scanning.
	Problems []string
}

// TargetName returns the simple name of the record type the converter maps.
func (t TypeDecl) TargetName() string {
	if t.Mapping != "" {
		return t.Mapping
	}
	return t.Name
}

// ConverterName returns the generated converter's type name. Plain types get
// <Target>_MapConverter; redirects get <Marked>_mapping_<Target>_MapConverter
// so two redirects onto the same target cannot collide.
func (t TypeDecl) ConverterName() string {
	if t.Mapping != "" {
		return t.Name + "_mapping_" + t.Mapping + converterSuffix
	}
	return t.Name + converterSuffix
}

// SourceFQN returns the import-path-qualified name of the marked type.
func (t TypeDecl) SourceFQN() string {
	return t.ImportPath + "." + t.Name
}

// ConverterFQN returns the import-path-qualified name of the generated
// converter.
func (t TypeDecl) ConverterFQN() string {
	return t.ImportPath + "." + t.ConverterName()
}

const converterSuffix = "_MapConverter"
