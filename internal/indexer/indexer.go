// Package indexer turns parsed elements into graph writes.
package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/infer"
)

// Store is the slice of the graph store the indexer writes through.
type Store interface {
	UpsertFile(ctx context.Context, gctx, path string) error
	UpsertFunction(ctx context.Context, gctx, filePath string, fn graph.Function) error
	UpsertClass(ctx context.Context, gctx, filePath string, cls graph.Class) error
	UpsertComponent(ctx context.Context, gctx, filePath string, c graph.Component) error
	UpsertHook(ctx context.Context, gctx, filePath string, h graph.Hook) error
	UpsertPattern(ctx context.Context, gctx, filePath, language string, p graph.NextJsPattern) error
	UpsertFrontendElement(ctx context.Context, gctx, filePath, language string, fe graph.FrontendElement) error
	UpsertImport(ctx context.Context, gctx, filePath string, imp graph.Import) error
	UpsertExport(ctx context.Context, gctx, filePath string, exp graph.Export) error
	UpsertLibrary(ctx context.Context, gctx string, lib graph.Library) error

	AddCall(ctx context.Context, gctx, language, caller, callee string) error
	AddInstantiation(ctx context.Context, gctx, language, caller, class string) error
	AddExtends(ctx context.Context, gctx, language, class, super string) error
	AddImplements(ctx context.Context, gctx, language, class, iface string) error
}

// Result itemizes what one indexing call wrote. Errors carry every
// element write that failed; the elements before and after a failure
// are still committed.
type Result struct {
	Context       string   `json:"context"`
	FilePath      string   `json:"filePath"`
	Indexed       int      `json:"indexed"`
	Relationships int      `json:"relationships"`
	Errors        []string `json:"errors,omitempty"`
}

// Indexer writes parser output into the graph, one transaction per
// element. A batch is deliberately not atomic: a mid-batch failure
// leaves the earlier writes committed and is reported per element.
type Indexer struct {
	store    Store
	strategy infer.Strategy
	log      *zap.Logger
}

// New builds an Indexer around a store and an inference strategy.
func New(store Store, strategy infer.Strategy, log *zap.Logger) *Indexer {
	return &Indexer{store: store, strategy: strategy, log: log}
}

// IndexElements upserts the file node, each parsed element with its
// containment edge, and then runs relationship inference over function
// and class bodies.
func (ix *Indexer) IndexElements(ctx context.Context, gctx, filePath string, elements *graph.Elements) *Result {
	r := &Result{Context: gctx, FilePath: filePath}

	if err := ix.store.UpsertFile(ctx, gctx, filePath); err != nil {
		r.fail("file %s: %v", filePath, err)
	}

	for _, fn := range elements.Functions {
		if err := ix.store.UpsertFunction(ctx, gctx, filePath, fn); err != nil {
			r.fail("function %s: %v", fn.Name, err)
			continue
		}
		r.Indexed++
	}
	for _, cls := range elements.Classes {
		if err := ix.store.UpsertClass(ctx, gctx, filePath, cls); err != nil {
			r.fail("class %s: %v", cls.Name, err)
			continue
		}
		r.Indexed++
	}
	for _, c := range elements.Components {
		if err := ix.store.UpsertComponent(ctx, gctx, filePath, c); err != nil {
			r.fail("component %s: %v", c.Name, err)
			continue
		}
		r.Indexed++
	}
	for _, h := range elements.Hooks {
		if err := ix.store.UpsertHook(ctx, gctx, filePath, h); err != nil {
			r.fail("hook %s: %v", h.Name, err)
			continue
		}
		r.Indexed++
	}
	language := languageOf(elements)
	for _, p := range elements.Patterns {
		if err := ix.store.UpsertPattern(ctx, gctx, filePath, language, p); err != nil {
			r.fail("pattern %s: %v", p.Name, err)
			continue
		}
		r.Indexed++
	}
	for _, fe := range elements.FrontendElements {
		if err := ix.store.UpsertFrontendElement(ctx, gctx, filePath, language, fe); err != nil {
			r.fail("frontend element %s: %v", fe.Name, err)
			continue
		}
		r.Indexed++
	}
	for _, imp := range elements.Imports {
		if err := ix.store.UpsertImport(ctx, gctx, filePath, imp); err != nil {
			r.fail("import %s: %v", imp.Module, err)
			continue
		}
		r.Indexed++
	}
	for _, exp := range elements.Exports {
		if err := ix.store.UpsertExport(ctx, gctx, filePath, exp); err != nil {
			r.fail("export %s: %v", exp.Name, err)
			continue
		}
		r.Indexed++
	}

	ix.inferRelationships(ctx, gctx, elements, r)

	ix.log.Info("indexed file",
		zap.String("context", gctx),
		zap.String("file", filePath),
		zap.Int("elements", r.Indexed),
		zap.Int("relationships", r.Relationships),
		zap.Int("errors", len(r.Errors)))
	return r
}

// inferRelationships runs the lexical pass over function and class
// bodies. Unresolved targets become stub nodes in the same context.
func (ix *Indexer) inferRelationships(ctx context.Context, gctx string, elements *graph.Elements, r *Result) {
	for _, fn := range elements.Functions {
		refs := ix.strategy.FunctionRefs(fn.Body)
		for _, callee := range refs.Calls {
			if err := ix.store.AddCall(ctx, gctx, fn.Language, fn.Name, callee); err != nil {
				r.fail("call %s->%s: %v", fn.Name, callee, err)
				continue
			}
			r.Relationships++
		}
		for _, class := range refs.Instantiates {
			if err := ix.store.AddInstantiation(ctx, gctx, fn.Language, fn.Name, class); err != nil {
				r.fail("instantiation %s->%s: %v", fn.Name, class, err)
				continue
			}
			r.Relationships++
		}
	}

	for _, cls := range elements.Classes {
		refs := ix.strategy.ClassRefs(cls.Body)
		if refs.Extends != "" {
			if err := ix.store.AddExtends(ctx, gctx, cls.Language, cls.Name, refs.Extends); err != nil {
				r.fail("extends %s->%s: %v", cls.Name, refs.Extends, err)
			} else {
				r.Relationships++
			}
		}
		for _, iface := range refs.Implements {
			if err := ix.store.AddImplements(ctx, gctx, cls.Language, cls.Name, iface); err != nil {
				r.fail("implements %s->%s: %v", cls.Name, iface, err)
				continue
			}
			r.Relationships++
		}
	}
}

// IndexLibraries upserts one Library node per dependency plus PROVIDES
// edges for the APIs the known-library table lists.
func (ix *Indexer) IndexLibraries(ctx context.Context, gctx string, deps map[string]string) *Result {
	r := &Result{Context: gctx}
	for name, version := range deps {
		lib := graph.Library{Name: name, Version: version, Items: knownLibraries[name]}
		if err := ix.store.UpsertLibrary(ctx, gctx, lib); err != nil {
			r.fail("library %s: %v", name, err)
			continue
		}
		r.Indexed += 1 + len(lib.Items)
	}
	return r
}

func (r *Result) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func languageOf(elements *graph.Elements) string {
	if len(elements.Functions) > 0 {
		return elements.Functions[0].Language
	}
	if len(elements.Classes) > 0 {
		return elements.Classes[0].Language
	}
	return "typescript"
}
