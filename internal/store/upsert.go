package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// upsertNode creates or updates one node inside its own write
// transaction: read by natural key, then either create with createdAt or
// overwrite the mutable attributes and bump updatedAt.
//
// An empty attrs map is the stub case: the node is created with only its
// key fields if absent, and an existing node is left untouched (no
// updatedAt bump).
func (s *Store) upsertNode(ctx context.Context, label string, key, attrs map[string]any) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, upsertNodeTx(ctx, tx, label, key, attrs)
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %s node: %w", label, err)
	}
	s.log.Debug("node upserted", zap.String("label", label), zap.Any("key", key))
	return nil
}

func upsertNodeTx(ctx context.Context, tx neo4j.ManagedTransaction, label string, key, attrs map[string]any) error {
	pattern, params := keyPattern(key, "key_")

	result, err := tx.Run(ctx, fmt.Sprintf("MATCH (n:%s %s) RETURN n LIMIT 1", label, pattern), params)
	if err != nil {
		return err
	}
	exists := result.Next(ctx)
	if err := result.Err(); err != nil {
		return err
	}

	if exists {
		if len(attrs) == 0 {
			return nil
		}
		params["attrs"] = attrs
		_, err = tx.Run(ctx, fmt.Sprintf(
			"MATCH (n:%s %s) SET n += $attrs, n.updatedAt = datetime()", label, pattern), params)
		return err
	}

	props := make(map[string]any, len(key)+len(attrs))
	for k, v := range key {
		props[k] = v
	}
	for k, v := range attrs {
		props[k] = v
	}
	_, err = tx.Run(ctx, fmt.Sprintf(
		"CREATE (n:%s) SET n = $props, n.createdAt = datetime(), n.updatedAt = datetime()", label),
		map[string]any{"props": props})
	return err
}

// UpsertFile creates or touches the File node for a path.
func (s *Store) UpsertFile(ctx context.Context, gctx, path string) error {
	return s.upsertNode(ctx, graph.KindFile,
		map[string]any{"path": path, "context": gctx},
		map[string]any{"name": path})
}

// UpsertFunction upserts a Function node and its CONTAINS edge from the
// owning file.
func (s *Store) UpsertFunction(ctx context.Context, gctx, filePath string, fn graph.Function) error {
	key := map[string]any{"name": fn.Name, "language": fn.Language, "context": gctx}
	attrs := map[string]any{"body": fn.Body, "file": filePath}
	if fn.Params != "" {
		attrs["params"] = fn.Params
	}
	if err := s.upsertNode(ctx, graph.KindFunction, key, attrs); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelContains,
		ToLabel:   graph.KindFunction,
		ToKey:     key,
	})
}

// UpsertClass upserts a Class node and its CONTAINS edge.
func (s *Store) UpsertClass(ctx context.Context, gctx, filePath string, cls graph.Class) error {
	key := map[string]any{"name": cls.Name, "language": cls.Language, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindClass, key,
		map[string]any{"body": cls.Body, "file": filePath}); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelContains,
		ToLabel:   graph.KindClass,
		ToKey:     key,
	})
}

// UpsertComponent upserts a ReactComponent node and its CONTAINS edge.
func (s *Store) UpsertComponent(ctx context.Context, gctx, filePath string, c graph.Component) error {
	key := map[string]any{"name": c.Name, "language": c.Language, "context": gctx}
	attrs := map[string]any{"body": c.Body, "file": filePath}
	if len(c.Props) > 0 {
		attrs["props"] = c.Props
	}
	if len(c.Hooks) > 0 {
		attrs["hooks"] = c.Hooks
	}
	if err := s.upsertNode(ctx, graph.KindComponent, key, attrs); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelContains,
		ToLabel:   graph.KindComponent,
		ToKey:     key,
	})
}

// UpsertHook upserts a ReactHook node and the file's USES edge.
func (s *Store) UpsertHook(ctx context.Context, gctx, filePath string, h graph.Hook) error {
	key := map[string]any{"name": h.Name, "type": h.Type, "language": h.Language, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindHook, key, map[string]any{}); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelUses,
		ToLabel:   graph.KindHook,
		ToKey:     key,
	})
}

// UpsertPattern upserts a NextJsPattern node and the file's IMPLEMENTS
// edge.
func (s *Store) UpsertPattern(ctx context.Context, gctx, filePath, language string, p graph.NextJsPattern) error {
	key := map[string]any{"name": p.Name, "type": p.Type, "language": language, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindNextJsPattern, key, map[string]any{}); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelImplements,
		ToLabel:   graph.KindNextJsPattern,
		ToKey:     key,
	})
}

// UpsertFrontendElement upserts a FrontendElement node and the file's
// STYLES edge.
func (s *Store) UpsertFrontendElement(ctx context.Context, gctx, filePath, language string, fe graph.FrontendElement) error {
	key := map[string]any{"name": fe.Name, "type": fe.Type, "language": language, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindFrontendElement, key, map[string]any{}); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelStyles,
		ToLabel:   graph.KindFrontendElement,
		ToKey:     key,
	})
}

// UpsertImport upserts the imported Module node and an IMPORTS edge
// carrying the imported names.
func (s *Store) UpsertImport(ctx context.Context, gctx, filePath string, imp graph.Import) error {
	key := map[string]any{"name": imp.Module, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindModule, key, map[string]any{}); err != nil {
		return err
	}
	rel := relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelImports,
		ToLabel:   graph.KindModule,
		ToKey:     key,
	}
	if len(imp.Names) > 0 {
		rel.Props = map[string]any{"names": imp.Names}
	}
	return s.mergeRelation(ctx, rel)
}

// UpsertExport upserts an ExportedItem node and the file's EXPORTS edge.
func (s *Store) UpsertExport(ctx context.Context, gctx, filePath string, exp graph.Export) error {
	key := map[string]any{"name": exp.Name, "type": exp.Type, "context": gctx}
	if err := s.upsertNode(ctx, graph.KindExportedItem, key, map[string]any{}); err != nil {
		return err
	}
	return s.mergeRelation(ctx, relation{
		FromLabel: graph.KindFile,
		FromKey:   map[string]any{"path": filePath, "context": gctx},
		Type:      graph.RelExports,
		ToLabel:   graph.KindExportedItem,
		ToKey:     key,
	})
}

// UpsertLibrary upserts a Library node plus a PROVIDES edge to each of
// its items. Item writes are per-element, matching the rest of the
// engine: a failed item does not roll back the ones already written.
func (s *Store) UpsertLibrary(ctx context.Context, gctx string, lib graph.Library) error {
	libKey := map[string]any{"name": lib.Name, "context": gctx}
	attrs := map[string]any{}
	if lib.Version != "" {
		attrs["version"] = lib.Version
	}
	if err := s.upsertNode(ctx, graph.KindLibrary, libKey, attrs); err != nil {
		return err
	}
	for _, item := range lib.Items {
		itemKey := map[string]any{"name": item.Name, "library": lib.Name, "context": gctx}
		if err := s.upsertNode(ctx, item.Kind, itemKey, map[string]any{}); err != nil {
			return err
		}
		err := s.mergeRelation(ctx, relation{
			FromLabel: graph.KindLibrary,
			FromKey:   libKey,
			Type:      graph.RelProvides,
			ToLabel:   item.Kind,
			ToKey:     itemKey,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
