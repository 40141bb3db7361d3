// Package diff classifies parsed code elements against the persisted
// graph.
//
// Snippet mode answers "does this element exist" (FOUND / NOT_FOUND)
// without comparing bodies. File mode compares stored bodies
// character-for-character (MATCH / MODIFIED / NEW), so a formatting-only
// change classifies as MODIFIED; equality is syntactic by design, not
// AST-based.
package diff

import (
	"context"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// Store is the read slice of the graph store the validator needs.
type Store interface {
	FileExists(ctx context.Context, gctx, path string) (bool, error)
	FunctionsInFile(ctx context.Context, gctx, path string) (map[string]string, error)
	ClassInFile(ctx context.Context, gctx, path, name string) (string, bool, error)
	FunctionExists(ctx context.Context, gctx, name, language string) (bool, error)
	ClassExists(ctx context.Context, gctx, name, language string) (bool, error)
}

// Validator classifies elements against stored state.
type Validator struct {
	store Store
}

// New builds a Validator over the given store.
func New(store Store) *Validator {
	return &Validator{store: store}
}

// ValidateSnippet looks up each function and class by (name, language,
// context). NOT_FOUND is a classification, not an error: the element may
// be new code or a potential hallucination.
func (v *Validator) ValidateSnippet(ctx context.Context, gctx string, elements *graph.Elements) *graph.SnippetValidation {
	result := &graph.SnippetValidation{Context: gctx}

	for _, fn := range elements.Functions {
		exists, err := v.store.FunctionExists(ctx, gctx, fn.Name, fn.Language)
		if err != nil {
			result.Errors = append(result.Errors, "function "+fn.Name+": "+err.Error())
			continue
		}
		addExistence(result, fn.Name, graph.KindFunction, exists)
	}
	for _, cls := range elements.Classes {
		exists, err := v.store.ClassExists(ctx, gctx, cls.Name, cls.Language)
		if err != nil {
			result.Errors = append(result.Errors, "class "+cls.Name+": "+err.Error())
			continue
		}
		addExistence(result, cls.Name, graph.KindClass, exists)
	}
	return result
}

func addExistence(result *graph.SnippetValidation, name, kind string, exists bool) {
	status := graph.StatusNotFound
	if exists {
		status = graph.StatusFound
		result.Found++
	} else {
		result.NotFound++
	}
	result.Results = append(result.Results, graph.ElementStatus{Name: name, Kind: kind, Status: status})
}

// ValidateFile classifies each parsed element against what the graph
// holds for the file path. Functions are batch-resolved in one query;
// classes are looked up individually. File existence is reported
// separately from element classification.
func (v *Validator) ValidateFile(ctx context.Context, gctx, path string, elements *graph.Elements) *graph.FileValidation {
	result := &graph.FileValidation{Context: gctx, FilePath: path}

	fileExists, err := v.store.FileExists(ctx, gctx, path)
	if err != nil {
		result.Errors = append(result.Errors, "file lookup: "+err.Error())
	}
	result.FileExists = fileExists

	stored, err := v.store.FunctionsInFile(ctx, gctx, path)
	if err != nil {
		result.Errors = append(result.Errors, "function batch: "+err.Error())
		stored = map[string]string{}
	}
	for _, fn := range elements.Functions {
		body, ok := stored[fn.Name]
		classify(result, fn.Name, graph.KindFunction, ok, body == fn.Body)
	}

	for _, cls := range elements.Classes {
		body, ok, err := v.store.ClassInFile(ctx, gctx, path, cls.Name)
		if err != nil {
			result.Errors = append(result.Errors, "class "+cls.Name+": "+err.Error())
			continue
		}
		classify(result, cls.Name, graph.KindClass, ok, body == cls.Body)
	}
	return result
}

// classify applies the MATCH / MODIFIED / NEW rule: NEW when the name is
// absent under this file and context, MATCH on exact body equality,
// MODIFIED otherwise.
func classify(result *graph.FileValidation, name, kind string, exists, equal bool) {
	var status string
	switch {
	case !exists:
		status = graph.StatusNew
		result.New++
	case equal:
		status = graph.StatusMatch
		result.Matched++
	default:
		status = graph.StatusModified
		result.Modified++
	}
	result.Results = append(result.Results, graph.ElementStatus{Name: name, Kind: kind, Status: status})
}
