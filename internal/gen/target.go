package gen

import (
	"fmt"
	"io"
	"strings"

	"resource-bundler/internal/emit"
	"resource-bundler/internal/plan"
)

//go:generate go tool stringer -type=TargetKind -linecomment -output=target_string.go

// TargetKind selects the language of the generated artifacts.
type TargetKind int

const (
	TargetGo  TargetKind = iota // go
	TargetCpp                   // cpp
)

// ParseTargetKind parses "go" or "cpp" ("c++" is accepted as an alias).
func ParseTargetKind(s string) (TargetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go":
		return TargetGo, nil
	case "cpp", "c++":
		return TargetCpp, nil
	default:
		return 0, fmt.Errorf("unknown target %q (want go or cpp)", s)
	}
}

// SymbolPrefix returns the prefix the target puts before a key to name the
// resource's constant.
func (k TargetKind) SymbolPrefix() string {
	if k == TargetCpp {
		return cppSymbolPrefix
	}

	return goSymbolPrefix
}

// target renders the two units of an artifact pair for one language.
type target interface {
	writeDeclaration(w io.Writer, u *unit) error
	writeDefinition(w io.Writer, u *unit) error
}

// unit is the data shared by both halves of an artifact pair.
type unit struct {
	Tool       string
	Digest     string
	Package    string
	Class      string
	Guard      string
	Include    string
	Elem       string
	Signedness emit.Signedness
	Entries    []plan.Entry
}

// emitOptions returns the literal options for an array body at indent.
func (u *unit) emitOptions(indent string) emit.Options {
	return emit.Options{Signedness: u.Signedness, Indent: indent}
}
