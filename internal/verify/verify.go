// Package verify loads a generated resource package with the Go toolchain
// and checks that it type-checks and exposes the accessor contract.
package verify

import (
	"errors"
	"fmt"
	"go/constant"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from the generated package.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo

const keyConstPrefix = "Key_"

// Report describes a loaded resource package.
type Report struct {
	PkgPath string
	Name    string
	Files   []string
	// Elem is the accessor element type, int8 or byte.
	Elem string
	// Keys lists the Key_ constant values, sorted.
	Keys []string
}

// ContractError lists every way a package departs from the accessor
// contract.
type ContractError struct {
	PkgPath  string
	Problems []string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("package %s: %s", e.PkgPath, strings.Join(e.Problems, "; "))
}

// Package loads the package in dir and checks it. Load and type errors are
// returned joined; contract violations are returned as *ContractError along
// with the partial report.
func Package(dir string) (*Report, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}

	pkg := pkgs[0]

	var errs []error
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return check(pkg)
}

func check(pkg *packages.Package) (*Report, error) {
	report := &Report{
		PkgPath: pkg.PkgPath,
		Name:    pkg.Name,
		Files:   pkg.GoFiles,
	}

	scope := pkg.Types.Scope()

	var problems []string

	elem, problem := accessorElem(scope.Lookup("Get"))
	if problem != "" {
		problems = append(problems, problem)
	}

	report.Elem = elem

	if elem != "" {
		mustGet := fmt.Sprintf("func(key string) []%s", elem)
		if p := signatureProblem(scope.Lookup("MustGet"), "MustGet", mustGet); p != "" {
			problems = append(problems, p)
		}
	}

	if p := signatureProblem(scope.Lookup("Keys"), "Keys", "func() []string"); p != "" {
		problems = append(problems, p)
	}

	for _, name := range scope.Names() {
		if !strings.HasPrefix(name, keyConstPrefix) {
			continue
		}

		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || c.Val().Kind() != constant.String {
			problems = append(problems, name+" is not a string constant")
			continue
		}

		key := constant.StringVal(c.Val())
		if name != keyConstPrefix+key {
			problems = append(problems, fmt.Sprintf("%s holds key %q", name, key))
		}

		report.Keys = append(report.Keys, key)
	}

	slices.Sort(report.Keys)

	if len(problems) > 0 {
		return report, &ContractError{PkgPath: pkg.PkgPath, Problems: problems}
	}

	return report, nil
}

// accessorElem checks Get and returns its element type name.
func accessorElem(obj types.Object) (string, string) {
	fn, ok := obj.(*types.Func)
	if !ok {
		return "", "missing func Get"
	}

	for _, elem := range []string{"int8", "byte"} {
		want := fmt.Sprintf("func(key string) ([]%s, error)", elem)
		if types.TypeString(fn.Type(), nil) == want {
			return elem, ""
		}
	}

	return "", fmt.Sprintf("Get has signature %s", types.TypeString(fn.Type(), nil))
}

func signatureProblem(obj types.Object, name, want string) string {
	fn, ok := obj.(*types.Func)
	if !ok {
		return "missing func " + name
	}

	if got := types.TypeString(fn.Type(), nil); got != want {
		return fmt.Sprintf("%s has signature %s, want %s", name, got, want)
	}

	return ""
}

// MissingKeys returns the expected keys absent from the report, and the
// reported keys that were not expected.
func (r *Report) MissingKeys(expected []string) (missing, unexpected []string) {
	have := make(map[string]bool, len(r.Keys))
	for _, k := range r.Keys {
		have[k] = true
	}

	want := make(map[string]bool, len(expected))
	for _, k := range expected {
		want[k] = true

		if !have[k] {
			missing = append(missing, k)
		}
	}

	for _, k := range r.Keys {
		if !want[k] {
			unexpected = append(unexpected, k)
		}
	}

	return missing, unexpected
}
