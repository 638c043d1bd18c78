package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
)

// DirectivePrefix marks a struct declaration for converter generation, as in:
//
//	//automap:convert exclude=Password,Internal mapping=UserRecord
const DirectivePrefix = "automap:convert"

// StructTagKey is the struct tag consulted for per-field policy.
const StructTagKey = "automap"

// directive is the parsed form of a //automap:convert comment.
type directive struct {
	exclude []string
	mapping string
}

// DiscoverTypes parses the Go package in dir and returns one TypeDecl per
// struct declaration carrying the convert directive, with fields already
// flattened. importPath qualifies names in the build manifest.
func DiscoverTypes(dir, importPath string) ([]TypeDecl, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dir, err)
	}

	var types []TypeDecl
	for pkgName, pkg := range pkgs {
		if strings.HasSuffix(pkgName, "_test") {
			continue
		}

		index := indexStructs(pkg)

		// Deterministic output: walk files in name order.
		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, fileName := range fileNames {
			file := pkg.Files[fileName]
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.TYPE {
					continue
				}
				for _, spec := range genDecl.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if _, isStruct := typeSpec.Type.(*ast.StructType); !isStruct {
						continue
					}
					dir, found := parseDirective(typeSpec.Doc, genDecl.Doc)
					if !found {
						continue
					}
					types = append(types, buildTypeDecl(pkgName, importPath, filepath.Base(fileName), typeSpec.Name.Name, dir, index))
				}
			}
		}
	}

	return types, nil
}

// indexStructs maps every struct type name in the package to its declaration,
// for embedded-chain and mapping-redirect resolution.
func indexStructs(pkg *ast.Package) map[string]*ast.StructType {
	index := make(map[string]*ast.StructType)
	for _, file := range pkg.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			if typeSpec, ok := n.(*ast.TypeSpec); ok {
				if structType, ok := typeSpec.Type.(*ast.StructType); ok {
					index[typeSpec.Name.Name] = structType
				}
			}
			return true
		})
	}
	return index
}

// parseDirective looks for the convert directive in the given comment groups
// (the TypeSpec doc wins over the enclosing GenDecl doc).
func parseDirective(groups ...*ast.CommentGroup) (directive, bool) {
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			text := strings.TrimPrefix(comment.Text, "//")
			text = strings.TrimSpace(text)
			if !strings.HasPrefix(text, DirectivePrefix) {
				continue
			}
			rest := strings.TrimPrefix(text, DirectivePrefix)
			return parseDirectiveOptions(rest), true
		}
	}
	return directive{}, false
}

func parseDirectiveOptions(rest string) directive {
	var d directive
	for _, opt := range strings.Fields(rest) {
		switch {
		case strings.HasPrefix(opt, "exclude="):
			for _, name := range strings.Split(strings.TrimPrefix(opt, "exclude="), ",") {
				if name = strings.TrimSpace(name); name != "" {
					d.exclude = append(d.exclude, name)
				}
			}
		case strings.HasPrefix(opt, "mapping="):
			d.mapping = strings.TrimSpace(strings.TrimPrefix(opt, "mapping="))
		}
	}
	return d
}

func buildTypeDecl(pkgName, importPath, sourceFile, typeName string, d directive, index map[string]*ast.StructType) TypeDecl {
	decl := TypeDecl{
		PackageName: pkgName,
		ImportPath:  importPath,
		SourceFile:  sourceFile,
		Name:        typeName,
		Mapping:     d.mapping,
		Exclude:     d.exclude,
	}

	target := decl.TargetName()
	structType, ok := index[target]
	if !ok {
		decl.Problems = append(decl.Problems,
			fmt.Sprintf("mapping target '%s' is not a struct in this package", target))
		return decl
	}

	decl.Fields = flattenFields(target, structType, index)
	return decl
}

// parseTag extracts and parses the automap struct tag of a field.
func parseTag(field *ast.Field) (TagOptions, bool) {
	if field.Tag == nil {
		return TagOptions{}, false
	}
	raw := strings.Trim(field.Tag.Value, "`")
	value, ok := reflect.StructTag(raw).Lookup(StructTagKey)
	if !ok {
		return TagOptions{}, false
	}
	return parseTagOptions(value), true
}

func parseTagOptions(value string) TagOptions {
	var tag TagOptions
	for _, opt := range strings.Split(value, ",") {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "":
		case opt == "nomap":
			tag.NoMap = true
		case opt == "nobean":
			tag.NoBean = true
		case opt == "ignore":
			tag.Ignore = true
		case strings.HasPrefix(opt, "method="):
			switch strings.TrimPrefix(opt, "method=") {
			case "map":
				tag.Method = DirectionToMap
			case "bean":
				tag.Method = DirectionToBean
			case "both":
				tag.Method = DirectionBoth
			default:
				tag.Problems = append(tag.Problems,
					fmt.Sprintf("invalid method '%s' (want map, bean, or both)", strings.TrimPrefix(opt, "method=")))
			}
		case strings.HasPrefix(opt, "target="):
			tag.Target = strings.TrimSpace(strings.TrimPrefix(opt, "target="))
		default:
			tag.Problems = append(tag.Problems, fmt.Sprintf("unknown option '%s'", opt))
		}
	}
	return tag
}
