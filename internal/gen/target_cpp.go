package gen

import (
	"fmt"
	"io"
	"text/template"

	"resource-bundler/internal/emit"
)

const cppSymbolPrefix = "___res___"

type cppTarget struct{}

// cppElem returns the C++ storage type matching s. std::string relies on
// char being signed, which the signed literals assume.
func cppElem(s emit.Signedness) string {
	if s == emit.Unsigned {
		return "std::vector<unsigned char>"
	}

	return "std::string"
}

func (cppTarget) writeDeclaration(w io.Writer, u *unit) error {
	if err := cppHeaderTemplate.Execute(w, u); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	return nil
}

func (cppTarget) writeDefinition(w io.Writer, u *unit) error {
	if err := cppSourceHeaderTemplate.Execute(w, u); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	for _, e := range u.Entries {
		if _, err := fmt.Fprintf(w, "const %s %s::%s = {\n", u.Elem, u.Class, e.Symbol); err != nil {
			return err
		}

		if _, err := emit.EmitFile(w, e.Resource.Path, u.emitOptions("\t\t")); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "};\n\n"); err != nil {
			return err
		}
	}

	if err := cppSourceTableTemplate.Execute(w, u); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	return nil
}

var cppHeaderTemplate = template.Must(template.New("cpp_header").Parse(`// THIS IS A MACHINE GENERATED FILE. DO NOT EDIT!
// Generated by {{.Tool}}.
// resource-set: {{.Digest}}

#ifndef {{.Guard}}
#define {{.Guard}}

#include <string>
#include <unordered_map>
{{- if eq .Elem "std::vector<unsigned char>"}}
#include <vector>
{{- end}}

class {{.Class}} {

public:
	{{.Class}}() = delete;

private:
{{- range .Entries}}
	static const {{$.Elem}} {{.Symbol}};
{{- end}}

	static const std::unordered_map< std::string, const {{.Elem}} * > _resources;

public:
	static const {{.Elem}}& Get(const std::string& resource);

};

#endif
`))

var cppSourceHeaderTemplate = template.Must(template.New("cpp_source_header").Parse(`// THIS IS A MACHINE GENERATED FILE. DO NOT EDIT!
// Generated by {{.Tool}}.
// resource-set: {{.Digest}}

#include "{{.Include}}"

#include <iostream>
#include <stdexcept>

`))

var cppSourceTableTemplate = template.Must(template.New("cpp_source_table").Parse(`const std::unordered_map< std::string, const {{.Elem}} * > {{.Class}}::_resources = {
{{- range .Entries}}
		{ "{{.Key}}", &{{.Symbol}} },
{{- end}}
};

const {{.Elem}}& {{.Class}}::Get(const std::string& resource) {
	auto iter = _resources.find(resource);

	if (iter == _resources.end()) {
		std::cerr << "Resource does not exist: " << resource << std::endl;
		throw std::out_of_range("Resource does not exist: " + resource);
	}

	return *iter->second;
}
`))
