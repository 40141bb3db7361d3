package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// FileExists reports whether a File node exists for the path in the
// given context.
func (s *Store) FileExists(ctx context.Context, gctx, path string) (bool, error) {
	return s.nodeExists(ctx, graph.KindFile, map[string]any{"path": path, "context": gctx})
}

// FunctionExists reports whether a Function with the given name and
// language exists in the context. Used by snippet-mode validation;
// the body is deliberately not compared.
func (s *Store) FunctionExists(ctx context.Context, gctx, name, language string) (bool, error) {
	return s.nodeExists(ctx, graph.KindFunction,
		map[string]any{"name": name, "language": language, "context": gctx})
}

// ClassExists reports whether a Class with the given name and language
// exists in the context.
func (s *Store) ClassExists(ctx context.Context, gctx, name, language string) (bool, error) {
	return s.nodeExists(ctx, graph.KindClass,
		map[string]any{"name": name, "language": language, "context": gctx})
}

func (s *Store) nodeExists(ctx context.Context, label string, key map[string]any) (bool, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	pattern, params := keyPattern(key, "key_")
	result, err := session.Run(ctx,
		fmt.Sprintf("MATCH (n:%s %s) RETURN n LIMIT 1", label, pattern), params)
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", label, err)
	}
	exists := result.Next(ctx)
	if err := result.Err(); err != nil {
		return false, err
	}
	return exists, nil
}

// FunctionsInFile batch-resolves every Function contained by the file,
// returning name to stored body.
func (s *Store) FunctionsInFile(ctx context.Context, gctx, path string) (map[string]string, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (f:File {path: $path, context: $context})-[:CONTAINS]->(fn:Function)
		RETURN fn.name AS name, fn.body AS body`,
		map[string]any{"path": path, "context": gctx})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve functions in %s: %w", path, err)
	}

	bodies := make(map[string]string)
	for result.Next(ctx) {
		record := result.Record()
		name := asString(record, "name")
		if name == "" {
			continue
		}
		bodies[name] = asString(record, "body")
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return bodies, nil
}

// ClassInFile looks up one class contained by the file, returning its
// stored body and whether it exists.
func (s *Store) ClassInFile(ctx context.Context, gctx, path, name string) (string, bool, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (f:File {path: $path, context: $context})-[:CONTAINS]->(c:Class {name: $name})
		RETURN c.body AS body LIMIT 1`,
		map[string]any{"path": path, "context": gctx, "name": name})
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve class %s in %s: %w", name, path, err)
	}
	if result.Next(ctx) {
		return asString(result.Record(), "body"), true, nil
	}
	if err := result.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// ElementKeys lists every Function and Class name in a context, keyed by
// (name, kind). The optional matches mean an empty context yields no
// rows rather than an error; null placeholder rows are filtered here.
func (s *Store) ElementKeys(ctx context.Context, gctx string) ([]graph.ElementKey, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		OPTIONAL MATCH (fn:Function {context: $context})
		WITH collect(DISTINCT fn.name) AS functions
		OPTIONAL MATCH (c:Class {context: $context})
		RETURN functions, collect(DISTINCT c.name) AS classes`,
		map[string]any{"context": gctx})
	if err != nil {
		return nil, fmt.Errorf("failed to list elements for %s: %w", gctx, err)
	}

	var keys []graph.ElementKey
	if result.Next(ctx) {
		record := result.Record()
		for _, name := range asStringList(record, "functions") {
			keys = append(keys, graph.ElementKey{Name: name, Kind: graph.KindFunction})
		}
		for _, name := range asStringList(record, "classes") {
			keys = append(keys, graph.ElementKey{Name: name, Kind: graph.KindClass})
		}
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func asStringList(record *neo4j.Record, field string) []string {
	v, ok := record.Get(field)
	if !ok || v == nil {
		return nil
	}
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
