package bundle

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-bundler/internal/discover"
	"resource-bundler/internal/emit"
	"resource-bundler/internal/gen"
	"resource-bundler/internal/plan"
	"resource-bundler/internal/stale"
)

var past = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type workspace struct {
	root string
	pair gen.ArtifactPair
}

func newWorkspace(t *testing.T, files map[string]string) workspace {
	t.Helper()

	dir := t.TempDir()
	root := filepath.Join(dir, "res")
	require.NoError(t, os.MkdirAll(root, 0o755))

	w := workspace{
		root: root,
		pair: gen.ArtifactPair{
			DeclarationPath: filepath.Join(dir, "out", "resources.go"),
			DefinitionPath:  filepath.Join(dir, "out", "resources_data.go"),
		},
	}

	for rel, content := range files {
		w.write(t, rel, content, past)
	}

	return w
}

func (w workspace) write(t *testing.T, rel, content string, mod time.Time) {
	t.Helper()

	path := filepath.Join(w.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func (w workspace) modTimes(t *testing.T) (time.Time, time.Time) {
	t.Helper()

	decl, err := os.Stat(w.pair.DeclarationPath)
	require.NoError(t, err)
	def, err := os.Stat(w.pair.DefinitionPath)
	require.NoError(t, err)

	return decl.ModTime(), def.ModTime()
}

func newBundler(t *testing.T, root string, mutate func(*Options)) *Bundler {
	t.Helper()

	opts := Options{
		Root:      root,
		Discover:  discover.DefaultOptions(),
		Plan:      plan.DefaultConfig(),
		Generator: gen.DefaultGeneratorConfig(),
	}
	if mutate != nil {
		mutate(&opts)
	}

	b, err := New(opts)
	require.NoError(t, err)

	return b
}

func TestRun_GeneratesThenSkips(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"a.txt":                "A",
		"fonts/mono.ttf":       "\x00\xff",
		"fonts/CMakeLists.txt": "ignored",
	})
	b := newBundler(t, w.root, nil)

	first, err := b.Run(w.pair)
	require.NoError(t, err)
	assert.True(t, first.Generated)
	assert.Equal(t, stale.ReasonMissingArtifact, first.Decision.Reason)
	assert.Equal(t, []string{"a_txt", "fonts_mono_ttf"}, first.Plan.Keys())

	def, err := os.ReadFile(w.pair.DefinitionPath)
	require.NoError(t, err)
	assert.Contains(t, string(def), "var res_a_txt = [...]int8{\n\t65,\n}")
	assert.Contains(t, string(def), "var res_fonts_mono_ttf = [...]int8{\n\t0, -1,\n}")

	declBefore, defBefore := w.modTimes(t)

	second, err := b.Run(w.pair)
	require.NoError(t, err)
	assert.False(t, second.Generated)
	assert.Equal(t, stale.ReasonFresh, second.Decision.Reason)

	declAfter, defAfter := w.modTimes(t)
	assert.Equal(t, declBefore, declAfter)
	assert.Equal(t, defBefore, defAfter)
}

func TestRun_NewerResourceRegenerates(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.txt": "A"})
	b := newBundler(t, w.root, nil)

	_, err := b.Run(w.pair)
	require.NoError(t, err)

	w.write(t, "a.txt", "B", time.Now().Add(time.Hour))

	result, err := b.Run(w.pair)
	require.NoError(t, err)
	assert.True(t, result.Generated)
	assert.Equal(t, stale.ReasonResourceNewer, result.Decision.Reason)
	assert.Equal(t, "a.txt", result.Decision.Trigger)

	def, err := os.ReadFile(w.pair.DefinitionPath)
	require.NoError(t, err)
	assert.Contains(t, string(def), "\t66,\n")
}

func TestRun_TrackRemovals(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.txt": "A", "b.txt": "B"})

	_, err := newBundler(t, w.root, nil).Run(w.pair)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(w.root, "b.txt")))

	untracked, err := newBundler(t, w.root, nil).Run(w.pair)
	require.NoError(t, err)
	assert.False(t, untracked.Generated)

	tracked, err := newBundler(t, w.root, func(o *Options) { o.Oracle.TrackRemovals = true }).Run(w.pair)
	require.NoError(t, err)
	assert.True(t, tracked.Generated)
	assert.Equal(t, stale.ReasonResourceSetChanged, tracked.Decision.Reason)
	assert.Equal(t, []string{"a_txt"}, tracked.Plan.Keys())
}

func TestRun_Force(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.txt": "A"})

	_, err := newBundler(t, w.root, nil).Run(w.pair)
	require.NoError(t, err)

	result, err := newBundler(t, w.root, func(o *Options) { o.Oracle.Force = true }).Run(w.pair)
	require.NoError(t, err)
	assert.True(t, result.Generated)
	assert.Equal(t, stale.ReasonForced, result.Decision.Reason)
}

func TestRun_MissingRootTouchesNothing(t *testing.T) {
	w := newWorkspace(t, nil)
	b := newBundler(t, filepath.Join(w.root, "missing"), nil)

	_, err := b.Run(w.pair)

	var cfgErr *discover.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.NoFileExists(t, w.pair.DeclarationPath)
	assert.NoFileExists(t, w.pair.DefinitionPath)
}

func TestRun_CollisionTouchesNothing(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.b": "1", "a_b": "2"})

	_, err := newBundler(t, w.root, nil).Run(w.pair)

	var collisionErr *plan.CollisionError
	require.ErrorAs(t, err, &collisionErr)
	require.Len(t, collisionErr.Collisions, 1)
	assert.Equal(t, "a_b", collisionErr.Collisions[0].Key)
	assert.NoFileExists(t, w.pair.DeclarationPath)

	result, err := newBundler(t, w.root, func(o *Options) { o.Plan.Collisions = plan.CollisionSuffix }).Run(w.pair)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b", "a_b_2"}, result.Plan.Keys())
}

func TestRun_CppTarget(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.txt": "A"})
	dir := filepath.Dir(w.root)
	pair := gen.ArtifactPair{
		DeclarationPath: filepath.Join(dir, "_res.h"),
		DefinitionPath:  filepath.Join(dir, "_res.cpp"),
	}

	result, err := newBundler(t, w.root, func(o *Options) { o.Generator.Target = gen.TargetCpp }).Run(pair)
	require.NoError(t, err)
	require.True(t, result.Generated)
	assert.Equal(t, "___res___a_txt", result.Plan.Entries[0].Symbol)

	src, err := os.ReadFile(pair.DefinitionPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), `#include "_res.h"`)
	assert.Contains(t, string(src), "const std::string ___res___::___res___a_txt = {\n\t\t65,\n};")
}

func TestCatalog(t *testing.T) {
	w := newWorkspace(t, map[string]string{"img/logo.png": "\x89PNG"})

	c, err := newBundler(t, w.root, nil).Catalog()
	require.NoError(t, err)

	data, err := c.Get("img_logo_png")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
	assert.NoFileExists(t, w.pair.DeclarationPath)
}

func TestNew_RejectsBadGeneratorConfig(t *testing.T) {
	_, err := New(Options{Generator: gen.GeneratorConfig{Target: gen.TargetGo, PackageName: "not valid"}})
	require.Error(t, err)
}

func TestRun_LogsGeneratorSettings(t *testing.T) {
	w := newWorkspace(t, map[string]string{"a.txt": "A"})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := newBundler(t, w.root, func(o *Options) {
		o.Generator.Signedness = emit.Unsigned
		o.Logger = logger
	})
	assert.Equal(t, emit.Unsigned, b.GeneratorConfig().Signedness)

	_, err := b.Run(w.pair)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "reason=\"missing artifact\"")
	assert.Contains(t, logs.String(), "target=go signedness=unsigned")
}
