package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// ListContexts enumerates every distinct context present on any node,
// with per-context element counts.
func (s *Store) ListContexts(ctx context.Context) ([]graph.ContextInfo, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (n) WHERE n.context IS NOT NULL
		WITH n.context AS context, labels(n) AS ls
		RETURN context,
			sum(CASE WHEN 'File' IN ls THEN 1 ELSE 0 END) AS files,
			sum(CASE WHEN 'Function' IN ls THEN 1 ELSE 0 END) AS functions,
			sum(CASE WHEN 'Class' IN ls THEN 1 ELSE 0 END) AS classes,
			sum(CASE WHEN 'ReactComponent' IN ls THEN 1 ELSE 0 END) AS components
		ORDER BY context`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list contexts: %w", err)
	}

	var infos []graph.ContextInfo
	for result.Next(ctx) {
		record := result.Record()
		key := asString(record, "context")
		project, branch := graph.SplitContext(key)
		infos = append(infos, graph.ContextInfo{
			Context:    key,
			Project:    project,
			Branch:     branch,
			Files:      asInt(record, "files"),
			Functions:  asInt(record, "functions"),
			Classes:    asInt(record, "classes"),
			Components: asInt(record, "components"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// ListBranches filters ListContexts down to one project's branches.
func (s *Store) ListBranches(ctx context.Context, project string) ([]graph.ContextInfo, error) {
	all, err := s.ListContexts(ctx)
	if err != nil {
		return nil, err
	}
	prefix := graph.BranchPrefix(project)
	var infos []graph.ContextInfo
	for _, info := range all {
		if strings.HasPrefix(info.Context, prefix) {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// ContextExists reports whether any node carries the context. Branch
// "creation" is this existence check only: contexts come into existence
// implicitly through indexing, never through admin writes.
func (s *Store) ContextExists(ctx context.Context, gctx string) (bool, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		"MATCH (n {context: $context}) RETURN n LIMIT 1",
		map[string]any{"context": gctx})
	if err != nil {
		return false, fmt.Errorf("failed to check context %s: %w", gctx, err)
	}
	exists := result.Next(ctx)
	if err := result.Err(); err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteContext detaches and deletes every node scoped to the context,
// taking all incident edges with it. Irreversible; returns the number of
// nodes removed.
func (s *Store) DeleteContext(ctx context.Context, gctx string) (int, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		"MATCH (n {context: $context}) DETACH DELETE n",
		map[string]any{"context": gctx})
	if err != nil {
		return 0, fmt.Errorf("failed to delete context %s: %w", gctx, err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return 0, err
	}
	deleted := summary.Counters().NodesDeleted()
	s.log.Info("context deleted",
		zap.String("context", gctx),
		zap.Int("nodes", deleted))
	return deleted, nil
}
