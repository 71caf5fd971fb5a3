package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"resource-bundler/internal/discover"
	"resource-bundler/internal/plan"
)

// writeTree creates files under a fresh root and returns the root.
func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}

	return root
}

func resolve(t *testing.T, root string, kind TargetKind) *plan.Plan {
	t.Helper()

	resources, err := discover.Discover(root, discover.DefaultOptions())
	require.NoError(t, err)

	cfg := plan.DefaultConfig()
	cfg.SymbolPrefix = kind.SymbolPrefix()

	p, err := plan.NewResolver(cfg).Resolve(resources)
	require.NoError(t, err)

	return p
}

// goPackage is a parsed generated Go artifact pair.
type goPackage struct {
	fset   *token.FileSet
	files  []*ast.File
	consts map[string]string
	arrays map[string][]int64
	table  map[string]string
}

func parseGoPair(t *testing.T, pair ArtifactPair) *goPackage {
	t.Helper()

	pkg := &goPackage{
		fset:   token.NewFileSet(),
		consts: map[string]string{},
		arrays: map[string][]int64{},
		table:  map[string]string{},
	}

	for _, path := range []string{pair.DeclarationPath, pair.DefinitionPath} {
		f, err := parser.ParseFile(pkg.fset, path, nil, parser.ParseComments)
		require.NoError(t, err)
		pkg.files = append(pkg.files, f)
	}

	for _, f := range pkg.files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok || len(vs.Values) != 1 {
					continue
				}

				name := vs.Names[0].Name

				switch value := vs.Values[0].(type) {
				case *ast.BasicLit:
					s, err := strconv.Unquote(value.Value)
					require.NoError(t, err)
					pkg.consts[name] = s
				case *ast.CompositeLit:
					if name == "resources" {
						for _, elt := range value.Elts {
							kv := elt.(*ast.KeyValueExpr)
							slice := kv.Value.(*ast.SliceExpr)
							pkg.table[kv.Key.(*ast.Ident).Name] = slice.X.(*ast.Ident).Name
						}

						continue
					}

					pkg.arrays[name] = literalValues(t, value)
				}
			}
		}
	}

	return pkg
}

func literalValues(t *testing.T, lit *ast.CompositeLit) []int64 {
	t.Helper()

	values := []int64{}

	for _, elt := range lit.Elts {
		sign := int64(1)

		if unary, ok := elt.(*ast.UnaryExpr); ok {
			require.Equal(t, token.SUB, unary.Op)
			sign = -1
			elt = unary.X
		}

		basic := elt.(*ast.BasicLit)
		require.Equal(t, token.INT, basic.Kind)

		v, err := strconv.ParseInt(basic.Value, 10, 64)
		require.NoError(t, err)

		values = append(values, sign*v)
	}

	return values
}

// get mirrors the generated lookup: key -> table entry -> array.
func (p *goPackage) get(key string) ([]int64, bool) {
	for constName, value := range p.consts {
		if value != key {
			continue
		}

		symbol, ok := p.table[constName]
		if !ok {
			return nil, false
		}

		return p.arrays[symbol], true
	}

	return nil, false
}

// typeCheck type-checks the generated files as one package.
func (p *goPackage) typeCheck(t *testing.T) *types.Package {
	t.Helper()

	conf := types.Config{}

	pkg, err := conf.Check("res", p.fset, p.files, nil)
	require.NoError(t, err)

	return pkg
}
