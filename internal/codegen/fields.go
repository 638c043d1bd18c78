package codegen

import (
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
)

// flattenFields walks a struct declaration and its embedded-struct chain once,
// producing the single ordered field list the emitter consumes: the type's own
// named fields in declaration order, then each embedded struct's fields,
// most-derived to least-derived. Unexported fields are skipped before policy
// resolution ever runs; duplicate names across the chain are kept.
func flattenFields(owner string, structType *ast.StructType, index map[string]*ast.StructType) []FieldDecl {
	return collectFields(owner, structType, index, "", map[string]bool{owner: true})
}

func collectFields(owner string, structType *ast.StructType, index map[string]*ast.StructType, pathPrefix string, seen map[string]bool) []FieldDecl {
	var fields []FieldDecl
	var embedded []string

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// Embedded type: the ancestor link, walked after the own fields.
			// Only value-embedded structs of this package continue the chain;
			// anything else (pointer embeds, other-package types) terminates
			// it, the way reaching the universal base type does.
			if name, ok := embeddedStructName(field.Type, index); ok {
				embedded = append(embedded, name)
			}
			continue
		}

		tag, hasTag := parseTag(field)
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			path := name.Name
			if pathPrefix != "" {
				path = pathPrefix + "." + name.Name
			}
			fields = append(fields, FieldDecl{
				Name:   name.Name,
				Type:   typeString(field.Type),
				Path:   path,
				Owner:  owner,
				HasTag: hasTag,
				Tag:    tag,
			})
		}
	}

	for _, name := range embedded {
		if seen[name] {
			continue // embedding cycle
		}
		seen[name] = true
		prefix := name
		if pathPrefix != "" {
			prefix = pathPrefix + "." + name
		}
		fields = append(fields, collectFields(name, index[name], index, prefix, seen)...)
	}

	return fields
}

func embeddedStructName(expr ast.Expr, index map[string]*ast.StructType) (string, bool) {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	_, known := index[ident.Name]
	return ident.Name, known
}

// typeString renders a field's declared type in source syntax.
func typeString(expr ast.Expr) string {
	var sb strings.Builder
	if err := printer.Fprint(&sb, token.NewFileSet(), expr); err != nil {
		return "any"
	}
	return sb.String()
}
