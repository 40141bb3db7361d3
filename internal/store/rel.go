package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// relation describes one edge to merge between two nodes identified by
// their natural keys.
type relation struct {
	FromLabel string
	FromKey   map[string]any
	Type      string
	ToLabel   string
	ToKey     map[string]any
	Props     map[string]any
}

// mergeRelation ensures both endpoints exist (creating key-only stub
// nodes if needed) and that exactly one edge of the given type connects
// them, all inside one write transaction. Existing endpoints are not
// modified; re-merging the same edge is a no-op apart from refreshing
// edge properties.
func (s *Store) mergeRelation(ctx context.Context, rel relation) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := upsertNodeTx(ctx, tx, rel.FromLabel, rel.FromKey, nil); err != nil {
			return nil, err
		}
		if err := upsertNodeTx(ctx, tx, rel.ToLabel, rel.ToKey, nil); err != nil {
			return nil, err
		}
		return nil, mergeRelationTx(ctx, tx, rel)
	})
	if err != nil {
		return fmt.Errorf("failed to merge %s relationship: %w", rel.Type, err)
	}
	return nil
}

func mergeRelationTx(ctx context.Context, tx neo4j.ManagedTransaction, rel relation) error {
	fromPattern, params := keyPattern(rel.FromKey, "from_")
	toPattern, toParams := keyPattern(rel.ToKey, "to_")
	for k, v := range toParams {
		params[k] = v
	}

	match := fmt.Sprintf("MATCH (a:%s %s), (b:%s %s) ", rel.FromLabel, fromPattern, rel.ToLabel, toPattern)

	result, err := tx.Run(ctx, match+fmt.Sprintf("OPTIONAL MATCH (a)-[r:%s]->(b) RETURN r", rel.Type), params)
	if err != nil {
		return err
	}
	var exists bool
	if result.Next(ctx) {
		if r, ok := result.Record().Get("r"); ok && r != nil {
			exists = true
		}
	}
	if err := result.Err(); err != nil {
		return err
	}

	if exists {
		if len(rel.Props) == 0 {
			return nil
		}
		params["relProps"] = rel.Props
		_, err = tx.Run(ctx, match+fmt.Sprintf("MATCH (a)-[r:%s]->(b) SET r += $relProps", rel.Type), params)
		return err
	}

	props := rel.Props
	if props == nil {
		props = map[string]any{}
	}
	params["relProps"] = props
	_, err = tx.Run(ctx, match+fmt.Sprintf("CREATE (a)-[r:%s]->(b) SET r = $relProps", rel.Type), params)
	return err
}

// AddCall records a CALLS edge from a function to the named callee,
// creating a stub Function node for the callee if it has not been
// indexed yet. The stub inherits the caller's language.
func (s *Store) AddCall(ctx context.Context, gctx, language, caller, callee string) error {
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFunction,
		FromKey:   map[string]any{"name": caller, "language": language, "context": gctx},
		Type:      graph.RelCalls,
		ToLabel:   graph.KindFunction,
		ToKey:     map[string]any{"name": callee, "language": language, "context": gctx},
	})
}

// AddInstantiation records an INSTANTIATES edge from a function to a
// class, creating a stub Class node if needed.
func (s *Store) AddInstantiation(ctx context.Context, gctx, language, caller, class string) error {
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFunction,
		FromKey:   map[string]any{"name": caller, "language": language, "context": gctx},
		Type:      graph.RelInstantiates,
		ToLabel:   graph.KindClass,
		ToKey:     map[string]any{"name": class, "language": language, "context": gctx},
	})
}

// AddExtends records the single EXTENDS edge from a class to its
// superclass, creating a stub Class node if needed.
func (s *Store) AddExtends(ctx context.Context, gctx, language, class, super string) error {
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindClass,
		FromKey:   map[string]any{"name": class, "language": language, "context": gctx},
		Type:      graph.RelExtends,
		ToLabel:   graph.KindClass,
		ToKey:     map[string]any{"name": super, "language": language, "context": gctx},
	})
}

// AddImplements records an IMPLEMENTS edge from a class to an interface,
// creating a stub Interface node if needed.
func (s *Store) AddImplements(ctx context.Context, gctx, language, class, iface string) error {
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindClass,
		FromKey:   map[string]any{"name": class, "language": language, "context": gctx},
		Type:      graph.RelImplements,
		ToLabel:   graph.KindInterface,
		ToKey:     map[string]any{"name": iface, "context": gctx},
	})
}
