package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

type fakeStore struct {
	keys map[string][]graph.ElementKey
	err  error
}

func (f *fakeStore) ElementKeys(_ context.Context, gctx string) ([]graph.ElementKey, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.keys[gctx], nil
}

func fn(name string) graph.ElementKey {
	return graph.ElementKey{Name: name, Kind: graph.KindFunction}
}

func cls(name string) graph.ElementKey {
	return graph.ElementKey{Name: name, Kind: graph.KindClass}
}

func TestCompareBranches(t *testing.T) {
	store := &fakeStore{keys: map[string][]graph.ElementKey{
		"shop:main":    {fn("login"), fn("logout"), cls("Session")},
		"shop:feature": {fn("login"), fn("register"), cls("Session")},
	}}
	c := New(store)

	result, err := c.Compare(context.Background(), "shop", "main", "feature")
	require.NoError(t, err)

	assert.Equal(t, []graph.ElementKey{fn("logout")}, result.OnlyInSource)
	assert.Equal(t, []graph.ElementKey{fn("register")}, result.OnlyInTarget)
	assert.Equal(t, []graph.ElementKey{cls("Session"), fn("login")}, result.InBoth)
	assert.Equal(t, "shop:main", result.SourceContext)
	assert.Equal(t, "shop:feature", result.TargetContext)
}

func TestCompareSymmetry(t *testing.T) {
	store := &fakeStore{keys: map[string][]graph.ElementKey{
		"shop:a": {fn("one"), fn("shared"), cls("Widget")},
		"shop:b": {fn("two"), fn("shared")},
	}}
	c := New(store)

	forward, err := c.Compare(context.Background(), "shop", "a", "b")
	require.NoError(t, err)
	backward, err := c.Compare(context.Background(), "shop", "b", "a")
	require.NoError(t, err)

	assert.Equal(t, forward.OnlyInSource, backward.OnlyInTarget)
	assert.Equal(t, forward.OnlyInTarget, backward.OnlyInSource)
	assert.Equal(t, forward.InBoth, backward.InBoth)
}

func TestCompareKeyedByNameAndKind(t *testing.T) {
	// A Function and a Class sharing one name are distinct elements.
	store := &fakeStore{keys: map[string][]graph.ElementKey{
		"shop:main": {fn("Session")},
		"shop:dev":  {cls("Session")},
	}}
	c := New(store)

	result, err := c.Compare(context.Background(), "shop", "main", "dev")
	require.NoError(t, err)
	assert.Equal(t, []graph.ElementKey{fn("Session")}, result.OnlyInSource)
	assert.Equal(t, []graph.ElementKey{cls("Session")}, result.OnlyInTarget)
	assert.Empty(t, result.InBoth)
}

func TestCompareEmptyBranch(t *testing.T) {
	store := &fakeStore{keys: map[string][]graph.ElementKey{
		"shop:main": {fn("login")},
	}}
	c := New(store)

	result, err := c.Compare(context.Background(), "shop", "main", "ghost")
	require.NoError(t, err)
	assert.Equal(t, []graph.ElementKey{fn("login")}, result.OnlyInSource)
	assert.Empty(t, result.OnlyInTarget)
	assert.Empty(t, result.InBoth)
}

func TestCompareNullPlaceholdersFiltered(t *testing.T) {
	store := &fakeStore{keys: map[string][]graph.ElementKey{
		"shop:main": {fn("login"), {Name: "", Kind: graph.KindFunction}},
		"shop:dev":  {{Name: "", Kind: graph.KindClass}},
	}}
	c := New(store)

	result, err := c.Compare(context.Background(), "shop", "main", "dev")
	require.NoError(t, err)
	assert.Equal(t, []graph.ElementKey{fn("login")}, result.OnlyInSource)
	assert.Empty(t, result.OnlyInTarget)
}

func TestCompareStoreError(t *testing.T) {
	c := New(&fakeStore{err: errors.New("unavailable")})
	_, err := c.Compare(context.Background(), "shop", "a", "b")
	assert.Error(t, err)
}
