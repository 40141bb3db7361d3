package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/infer"
)

// fakeStore records every write and can fail selected elements by name.
type fakeStore struct {
	writes []string
	failOn map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: map[string]error{}}
}

func (f *fakeStore) record(kind, name string) error {
	if err, ok := f.failOn[name]; ok {
		return err
	}
	f.writes = append(f.writes, kind+":"+name)
	return nil
}

func (f *fakeStore) UpsertFile(_ context.Context, _, path string) error {
	return f.record("file", path)
}
func (f *fakeStore) UpsertFunction(_ context.Context, _, _ string, fn graph.Function) error {
	return f.record("function", fn.Name)
}
func (f *fakeStore) UpsertClass(_ context.Context, _, _ string, cls graph.Class) error {
	return f.record("class", cls.Name)
}
func (f *fakeStore) UpsertComponent(_ context.Context, _, _ string, c graph.Component) error {
	return f.record("component", c.Name)
}
func (f *fakeStore) UpsertHook(_ context.Context, _, _ string, h graph.Hook) error {
	return f.record("hook", h.Name)
}
func (f *fakeStore) UpsertPattern(_ context.Context, _, _, _ string, p graph.NextJsPattern) error {
	return f.record("pattern", p.Name)
}
func (f *fakeStore) UpsertFrontendElement(_ context.Context, _, _, _ string, fe graph.FrontendElement) error {
	return f.record("frontend", fe.Name)
}
func (f *fakeStore) UpsertImport(_ context.Context, _, _ string, imp graph.Import) error {
	return f.record("import", imp.Module)
}
func (f *fakeStore) UpsertExport(_ context.Context, _, _ string, exp graph.Export) error {
	return f.record("export", exp.Name)
}
func (f *fakeStore) UpsertLibrary(_ context.Context, _ string, lib graph.Library) error {
	return f.record("library", lib.Name)
}
func (f *fakeStore) AddCall(_ context.Context, _, _, caller, callee string) error {
	return f.record("calls", fmt.Sprintf("%s->%s", caller, callee))
}
func (f *fakeStore) AddInstantiation(_ context.Context, _, _, caller, class string) error {
	return f.record("instantiates", fmt.Sprintf("%s->%s", caller, class))
}
func (f *fakeStore) AddExtends(_ context.Context, _, _, class, super string) error {
	return f.record("extends", fmt.Sprintf("%s->%s", class, super))
}
func (f *fakeStore) AddImplements(_ context.Context, _, _, class, iface string) error {
	return f.record("implements", fmt.Sprintf("%s->%s", class, iface))
}

func newTestIndexer(store Store) *Indexer {
	return New(store, infer.NewLexical(), zap.NewNop())
}

func TestIndexElementsWritesEverything(t *testing.T) {
	store := newFakeStore()
	ix := newTestIndexer(store)

	elements := &graph.Elements{
		Functions: []graph.Function{
			{Name: "loadUser", Language: "typescript", Body: "{ return fetchUser(id); }"},
		},
		Classes: []graph.Class{
			{Name: "UserRepo", Language: "typescript", Body: "class UserRepo extends Base {}"},
		},
		Imports: []graph.Import{{Module: "react", Names: []string{"useState"}}},
		Exports: []graph.Export{{Name: "loadUser", Type: "named"}},
	}
	r := ix.IndexElements(context.Background(), "shop:main", "src/user.ts", elements)

	assert.Empty(t, r.Errors)
	assert.Equal(t, 4, r.Indexed)
	assert.Equal(t, 2, r.Relationships) // fetchUser call + Base extends
	assert.Contains(t, store.writes, "file:src/user.ts")
	assert.Contains(t, store.writes, "function:loadUser")
	assert.Contains(t, store.writes, "class:UserRepo")
	assert.Contains(t, store.writes, "calls:loadUser->fetchUser")
	assert.Contains(t, store.writes, "extends:UserRepo->Base")
}

func TestIndexElementsPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn["broken"] = errors.New("store unavailable")
	ix := newTestIndexer(store)

	elements := &graph.Elements{
		Functions: []graph.Function{
			{Name: "first", Language: "typescript", Body: "{}"},
			{Name: "broken", Language: "typescript", Body: "{}"},
			{Name: "last", Language: "typescript", Body: "{}"},
		},
	}
	r := ix.IndexElements(context.Background(), "shop:main", "src/a.ts", elements)

	// The failure is itemized; elements before and after are committed.
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "broken")
	assert.Equal(t, 2, r.Indexed)
	assert.Contains(t, store.writes, "function:first")
	assert.Contains(t, store.writes, "function:last")
	assert.NotContains(t, store.writes, "function:broken")
}

func TestIndexElementsDuplicatesCollapseAtStore(t *testing.T) {
	store := newFakeStore()
	ix := newTestIndexer(store)

	// The parser may report the same logical function twice; each
	// occurrence becomes an upsert, which the store's identity keys
	// collapse into one node.
	elements := &graph.Elements{
		Functions: []graph.Function{
			{Name: "dup", Language: "typescript", Body: "{}"},
			{Name: "dup", Language: "typescript", Body: "{}"},
		},
	}
	r := ix.IndexElements(context.Background(), "shop:main", "src/a.ts", elements)
	assert.Equal(t, 2, r.Indexed)
	assert.Empty(t, r.Errors)
}

func TestIndexLibraries(t *testing.T) {
	store := newFakeStore()
	ix := newTestIndexer(store)

	r := ix.IndexLibraries(context.Background(), "shop:main", map[string]string{
		"react":       "18.2.0",
		"tiny-helper": "1.0.0",
	})
	assert.Empty(t, r.Errors)
	assert.Contains(t, store.writes, "library:react")
	assert.Contains(t, store.writes, "library:tiny-helper")
	// react contributes its known API items on top of the two nodes.
	assert.Greater(t, r.Indexed, 2)
}

func TestIndexLibrariesPartialFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn["react"] = errors.New("boom")
	ix := newTestIndexer(store)

	r := ix.IndexLibraries(context.Background(), "shop:main", map[string]string{
		"react": "18.2.0",
		"zod":   "3.22.0",
	})
	require.Len(t, r.Errors, 1)
	assert.Contains(t, store.writes, "library:zod")
}
