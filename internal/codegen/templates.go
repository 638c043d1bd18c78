package codegen

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

// automapImport is the run-time package every generated file depends on.
const automapImport = "github.com/anqinworks/automap"

// MapEntry is one toMap statement: write the field at Path under Key.
type MapEntry struct {
	Key  string
	Path string
}

// BeanEntry is one toBean statement: read Name from the data map, checked-cast
// to Type, assign to the field at Path. Name is always the declared field
// name, never the toMap rename.
type BeanEntry struct {
	Name string
	Path string
	Type string
}

// ConverterData is the fully resolved input for emitting one converter.
type ConverterData struct {
	Name   string
	Target string
	ToMap  []MapEntry
	ToBean []BeanEntry
}

// FileData groups the converters emitted into one generated file, one per
// source file that declares marked types.
type FileData struct {
	Package    string
	SourceFile string
	Converters []ConverterData
}

// BuildConverterData resolves every field's policy and shapes the result for
// the emitter.
func BuildConverterData(t TypeDecl) ConverterData {
	data := ConverterData{
		Name:   t.ConverterName(),
		Target: t.TargetName(),
	}
	for _, field := range t.Fields {
		policy := ResolvePolicy(field, t.Exclude)
		if policy.IncludeToMap {
			data.ToMap = append(data.ToMap, MapEntry{Key: policy.MapKey, Path: field.Path})
		}
		if policy.IncludeToBean {
			data.ToBean = append(data.ToBean, BeanEntry{Name: field.Name, Path: field.Path, Type: field.Type})
		}
	}
	return data
}

// GroupBySourceFile buckets marked types by the file that declares them,
// preserving scan order.
func GroupBySourceFile(types []TypeDecl) []FileData {
	var files []FileData
	byFile := make(map[string]int)
	for _, t := range types {
		key := t.PackageName + "/" + t.SourceFile
		i, ok := byFile[key]
		if !ok {
			i = len(files)
			byFile[key] = i
			files = append(files, FileData{Package: t.PackageName, SourceFile: t.SourceFile})
		}
		files[i].Converters = append(files[i].Converters, BuildConverterData(t))
	}
	return files
}

var converterTemplate = template.Must(template.New("converter").Parse(`// Code generated by automap-gen. DO NOT EDIT.
//
// Source: {{.SourceFile}}

package {{.Package}}

import (
	"fmt"
	"reflect"

	"` + automapImport + `"
)
{{range .Converters}}
// {{.Name}} converts {{.Target}} values to and from map[string]any.
type {{.Name}} struct{}

// Target implements automap.Converter.
func ({{.Name}}) Target() reflect.Type {
	return reflect.TypeOf((*{{.Target}})(nil)).Elem()
}

// ToMap implements automap.Converter.
func (c {{.Name}}) ToMap(entity any) (map[string]any, error) {
	if entity == nil {
		return map[string]any{}, nil
	}
	e, ok := entity.(*{{.Target}})
	if !ok {
		v, okv := entity.({{.Target}})
		if !okv {
			return nil, automap.NewTypeConversionError("entity", "{{.Target}}", fmt.Sprintf("%T", entity))
		}
		e = &v
	}
	if e == nil {
		return map[string]any{}, nil
	}
	m := make(map[string]any, {{len .ToMap}})
{{- range .ToMap}}
	m[{{printf "%q" .Key}}] = e.{{.Path}}
{{- end}}
	return m, nil
}

// ToBean implements automap.Converter.
func (c {{.Name}}) ToBean(data map[string]any) (any, error) {
	bean := new({{.Target}})
	if len(data) == 0 {
		return bean, nil
	}
{{- range .ToBean}}
	if v, ok := data[{{printf "%q" .Name}}]; ok && v != nil {
		fv, ok := v.({{.Type}})
		if !ok {
			return nil, automap.NewTypeConversionError({{printf "%q" .Name}}, {{printf "%q" .Type}}, fmt.Sprintf("%T", v))
		}
		bean.{{.Path}} = fv
	}
{{- end}}
	return bean, nil
}
{{end}}`))

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by automap-gen. DO NOT EDIT.

package {{.Package}}

import "` + automapImport + `"

// NewMapRegistry builds the converter registry for this package. The build
// manifest at {{.ManifestPath}} is honored when present; a missing or broken
// manifest falls back to the full generated set.
func NewMapRegistry() *automap.Registry {
	return automap.Load({{printf "%q" .ManifestPath}},
{{- range .Converters}}
		{{.}}{},
{{- end}}
	)
}
`))

// RenderConverterFile emits the generated source for one file's converters,
// formatted (and import-pruned) by x/tools imports.
func RenderConverterFile(f FileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := converterTemplate.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("render converters for %s: %w", f.SourceFile, err)
	}
	return formatSource(f.SourceFile, buf.Bytes())
}

// RenderRegistryFile emits the per-package registry constructor enumerating
// every generated converter of the build pass.
func RenderRegistryFile(pkg, manifestPath string, converterNames []string) ([]byte, error) {
	var buf bytes.Buffer
	err := registryTemplate.Execute(&buf, struct {
		Package      string
		ManifestPath string
		Converters   []string
	}{pkg, manifestPath, converterNames})
	if err != nil {
		return nil, fmt.Errorf("render registry for package %s: %w", pkg, err)
	}
	return formatSource("automap_registry.go", buf.Bytes())
}

func formatSource(name string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", name, err)
	}
	return formatted, nil
}
