// Package compare computes set differences of code elements between two
// branches of one project.
package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// Store is the read slice of the graph store the comparator needs.
type Store interface {
	ElementKeys(ctx context.Context, gctx string) ([]graph.ElementKey, error)
}

// Comparator resolves two branch contexts independently and diffs their
// element sets. Elements are keyed by (name, kind), so a Function and a
// Class sharing a name stay distinct. Presence only: body differences
// are the file validator's job.
type Comparator struct {
	store Store
}

// New builds a Comparator over the given store.
func New(store Store) *Comparator {
	return &Comparator{store: store}
}

// Compare diffs sourceBranch against targetBranch for one project. The
// operation is symmetric: swapping branches swaps onlyInSource and
// onlyInTarget.
func (c *Comparator) Compare(ctx context.Context, project, sourceBranch, targetBranch string) (*graph.BranchDiff, error) {
	sourceCtx := graph.ResolveContext(project, sourceBranch)
	targetCtx := graph.ResolveContext(project, targetBranch)

	sourceKeys, err := c.store.ElementKeys(ctx, sourceCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to read source branch %s: %w", sourceBranch, err)
	}
	targetKeys, err := c.store.ElementKeys(ctx, targetCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to read target branch %s: %w", targetBranch, err)
	}

	inSource := keySet(sourceKeys)
	inTarget := keySet(targetKeys)

	result := &graph.BranchDiff{
		Project:       project,
		SourceBranch:  sourceBranch,
		TargetBranch:  targetBranch,
		SourceContext: sourceCtx,
		TargetContext: targetCtx,
	}
	for key := range inSource {
		if inTarget[key] {
			result.InBoth = append(result.InBoth, key)
		} else {
			result.OnlyInSource = append(result.OnlyInSource, key)
		}
	}
	for key := range inTarget {
		if !inSource[key] {
			result.OnlyInTarget = append(result.OnlyInTarget, key)
		}
	}

	sortKeys(result.OnlyInSource)
	sortKeys(result.OnlyInTarget)
	sortKeys(result.InBoth)
	return result, nil
}

func keySet(keys []graph.ElementKey) map[graph.ElementKey]bool {
	set := make(map[graph.ElementKey]bool, len(keys))
	for _, key := range keys {
		if key.Name == "" {
			continue
		}
		set[key] = true
	}
	return set
}

func sortKeys(keys []graph.ElementKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Kind < keys[j].Kind
	})
}
