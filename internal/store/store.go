// Package store persists the code knowledge graph in Neo4j. Every node
// and relationship carries a context property ("<project>:<branch>")
// that is the sole partition key; all reads and writes are scoped by
// exact match on it.
package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/config"
)

// Store wraps a Neo4j driver. One driver is created at process start and
// shared; each operation opens its own session and closes it on all exit
// paths.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	log      *zap.Logger
}

// New connects to Neo4j and verifies connectivity before returning.
func New(ctx context.Context, cfg config.Neo4j, log *zap.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j unreachable at %s: %w", cfg.URI, err)
	}
	return &Store{driver: driver, database: cfg.Database, log: log}, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// constraintStatements declares uniqueness on each label's natural key
// plus context, making concurrent upserts race-safe at the store level.
var constraintStatements = []string{
	`CREATE CONSTRAINT file_identity IF NOT EXISTS FOR (n:File) REQUIRE (n.path, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT function_identity IF NOT EXISTS FOR (n:Function) REQUIRE (n.name, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT class_identity IF NOT EXISTS FOR (n:Class) REQUIRE (n.name, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT component_identity IF NOT EXISTS FOR (n:ReactComponent) REQUIRE (n.name, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT hook_identity IF NOT EXISTS FOR (n:ReactHook) REQUIRE (n.name, n.type, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT module_identity IF NOT EXISTS FOR (n:Module) REQUIRE (n.name, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT export_identity IF NOT EXISTS FOR (n:ExportedItem) REQUIRE (n.name, n.type, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT interface_identity IF NOT EXISTS FOR (n:Interface) REQUIRE (n.name, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_identity IF NOT EXISTS FOR (n:Library) REQUIRE (n.name, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT pattern_identity IF NOT EXISTS FOR (n:NextJsPattern) REQUIRE (n.name, n.type, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT frontend_identity IF NOT EXISTS FOR (n:FrontendElement) REQUIRE (n.name, n.type, n.language, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_function_identity IF NOT EXISTS FOR (n:LibraryFunction) REQUIRE (n.name, n.library, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_class_identity IF NOT EXISTS FOR (n:LibraryClass) REQUIRE (n.name, n.library, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_constant_identity IF NOT EXISTS FOR (n:LibraryConstant) REQUIRE (n.name, n.library, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_hook_identity IF NOT EXISTS FOR (n:LibraryHook) REQUIRE (n.name, n.library, n.context) IS UNIQUE`,
	`CREATE CONSTRAINT library_type_identity IF NOT EXISTS FOR (n:LibraryType) REQUIRE (n.name, n.library, n.context) IS UNIQUE`,
}

// EnsureConstraints creates the uniqueness constraints if they are
// missing. Safe to call on every startup.
func (s *Store) EnsureConstraints(ctx context.Context) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range constraintStatements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	s.log.Debug("graph constraints ensured", zap.Int("count", len(constraintStatements)))
	return nil
}

func (s *Store) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
}

// keyPattern renders a deterministic `{field: $<prefix>field, ...}` map
// pattern for the given natural-key fields. The prefix keeps parameter
// names distinct when two key maps share one query.
func keyPattern(key map[string]any, prefix string) (pattern string, params map[string]any) {
	fields := make([]string, 0, len(key))
	for f := range key {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	params = make(map[string]any, len(key))
	for i, f := range fields {
		if i > 0 {
			pattern += ", "
		}
		pattern += fmt.Sprintf("%s: $%s%s", f, prefix, f)
		params[prefix+f] = key[f]
	}
	return "{" + pattern + "}", params
}

func asString(record *neo4j.Record, field string) string {
	v, ok := record.Get(field)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func asInt(record *neo4j.Record, field string) int {
	v, ok := record.Get(field)
	if !ok || v == nil {
		return 0
	}
	n, _ := v.(int64)
	return int(n)
}
