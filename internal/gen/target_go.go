package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"text/template"

	"resource-bundler/internal/emit"
)

const (
	goSymbolPrefix = "res_"
	goKeyPrefix    = "Key_"
)

type goTarget struct{}

// goElem returns the Go element type matching s.
func goElem(s emit.Signedness) string {
	if s == emit.Unsigned {
		return "byte"
	}

	return "int8"
}

func (goTarget) writeDeclaration(w io.Writer, u *unit) error {
	return executeFormatted(w, goDeclarationTemplate, u)
}

func (goTarget) writeDefinition(w io.Writer, u *unit) error {
	if err := goDefinitionHeaderTemplate.Execute(w, u); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	for _, e := range u.Entries {
		if e.Resource.Size == 0 {
			if _, err := fmt.Fprintf(w, "var %s = [...]%s{}\n\n", e.Symbol, u.Elem); err != nil {
				return err
			}

			continue
		}

		if _, err := fmt.Fprintf(w, "var %s = [...]%s{\n", e.Symbol, u.Elem); err != nil {
			return err
		}

		if _, err := emit.EmitFile(w, e.Resource.Path, u.emitOptions("\t")); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "}\n\n"); err != nil {
			return err
		}
	}

	return executeFormatted(w, goDefinitionTableTemplate, u)
}

// executeFormatted renders a small template and gofmts it before writing.
func executeFormatted(w io.Writer, tmpl *template.Template, u *unit) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, u); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting %s: %w", tmpl.Name(), err)
	}

	_, err = w.Write(formatted)

	return err
}

var goFuncs = template.FuncMap{
	"keyConst": func(key string) string { return goKeyPrefix + key },
}

var goDeclarationTemplate = template.Must(template.New("go_declaration").Funcs(goFuncs).Parse(`// Code generated by {{.Tool}}. DO NOT EDIT.
// resource-set: {{.Digest}}

// Package {{.Package}} embeds resource files. Resources are looked up by key,
// the resource's path relative to the resource root with every character
// outside [A-Za-z0-9_] replaced by an underscore.
package {{.Package}}

{{- if .Entries}}

// Resource keys accepted by Get.
const (
{{- range .Entries}}
	{{keyConst .Key}} = "{{.Key}}"
{{- end}}
)
{{- end}}

// resourceTable maps a resource key to its bytes.
type resourceTable map[string][]{{.Elem}}

// NotFoundError is returned for a key that names no resource.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "resource does not exist: " + e.Key
}

// Get returns the bytes of the resource registered under key. The slice
// shares memory with the embedded data and must not be modified.
func Get(key string) ([]{{.Elem}}, error) {
	return lookup(key)
}

// MustGet is like Get but panics with a *NotFoundError for an unknown key.
func MustGet(key string) []{{.Elem}} {
	data, err := lookup(key)
	if err != nil {
		panic(err)
	}

	return data
}

// Keys returns the registered keys in generation order.
func Keys() []string {
	return []string{ {{- range .Entries}}
		{{keyConst .Key}},
{{- end}}
	}
}
`))

var goDefinitionHeaderTemplate = template.Must(template.New("go_definition_header").Parse(`// Code generated by {{.Tool}}. DO NOT EDIT.
// resource-set: {{.Digest}}

package {{.Package}}

`))

var goDefinitionTableTemplate = template.Must(template.New("go_definition_table").Funcs(goFuncs).Parse(`var resources = resourceTable{ {{- range .Entries}}
	{{keyConst .Key}}: {{.Symbol}}[:],
{{- end}}
}

func lookup(key string) ([]{{.Elem}}, error) {
	data, ok := resources[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}

	return data[:len(data):len(data)], nil
}
`))
