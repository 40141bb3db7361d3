package graph

// Element kinds stored as node labels in the graph.
const (
	KindFile            = "File"
	KindFunction        = "Function"
	KindClass           = "Class"
	KindComponent       = "ReactComponent"
	KindHook            = "ReactHook"
	KindNextJsPattern   = "NextJsPattern"
	KindFrontendElement = "FrontendElement"
	KindModule          = "Module"
	KindExportedItem    = "ExportedItem"
	KindInterface       = "Interface"
	KindLibrary         = "Library"
	KindLibraryFunction = "LibraryFunction"
	KindLibraryClass    = "LibraryClass"
	KindLibraryConstant = "LibraryConstant"
	KindLibraryHook     = "LibraryHook"
	KindLibraryType     = "LibraryType"
)

// Relationship types between nodes.
const (
	RelContains     = "CONTAINS"
	RelUses         = "USES"
	RelImplements   = "IMPLEMENTS"
	RelStyles       = "STYLES"
	RelImports      = "IMPORTS"
	RelExports      = "EXPORTS"
	RelCalls        = "CALLS"
	RelInstantiates = "INSTANTIATES"
	RelExtends      = "EXTENDS"
	RelProvides     = "PROVIDES"
)

// Function is a parsed function with its source body.
type Function struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Body     string `json:"body"`
	Params   string `json:"params,omitempty"`
}

// Class is a parsed class with its source body.
type Class struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Body     string `json:"body"`
}

// Component is a parsed React component.
type Component struct {
	Name     string   `json:"name"`
	Language string   `json:"language"`
	Body     string   `json:"body"`
	Props    []string `json:"props,omitempty"`
	Hooks    []string `json:"hooks,omitempty"`
}

// Hook is a React hook usage detected in a file.
type Hook struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // builtin or custom
	Language string `json:"language"`
}

// NextJsPattern is a Next.js data-fetching or routing pattern.
type NextJsPattern struct {
	Name string `json:"name"`
	Type string `json:"type"` // data-fetching, metadata, route
}

// FrontendElement is a styled or markup-level element.
type FrontendElement struct {
	Name string `json:"name"`
	Type string `json:"type"` // styled-component, css-class, tag
}

// Import is a module import with the names it binds.
type Import struct {
	Module string   `json:"module"`
	Names  []string `json:"names,omitempty"`
}

// Export is an exported item and its export kind.
type Export struct {
	Name string `json:"name"`
	Type string `json:"type"` // named, default, function, class, const
}

// Elements is the parser's output for one source unit. Lists are
// unordered and may contain duplicates across detection passes; the
// identity-based upsert collapses them.
type Elements struct {
	Functions        []Function        `json:"functions,omitempty"`
	Classes          []Class           `json:"classes,omitempty"`
	Components       []Component       `json:"components,omitempty"`
	Hooks            []Hook            `json:"hooks,omitempty"`
	Patterns         []NextJsPattern   `json:"patterns,omitempty"`
	FrontendElements []FrontendElement `json:"frontendElements,omitempty"`
	Imports          []Import          `json:"imports,omitempty"`
	Exports          []Export          `json:"exports,omitempty"`
}

// Empty reports whether the parser found nothing at all.
func (e *Elements) Empty() bool {
	return len(e.Functions) == 0 && len(e.Classes) == 0 &&
		len(e.Components) == 0 && len(e.Hooks) == 0 &&
		len(e.Patterns) == 0 && len(e.FrontendElements) == 0 &&
		len(e.Imports) == 0 && len(e.Exports) == 0
}

// LibraryItem is one API item a library provides.
type LibraryItem struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // LibraryFunction, LibraryClass, LibraryConstant, LibraryHook, LibraryType
}

// Library is a dependency plus the items it provides.
type Library struct {
	Name    string        `json:"name"`
	Version string        `json:"version,omitempty"`
	Items   []LibraryItem `json:"items,omitempty"`
}

// Snippet-mode classification outcomes.
const (
	StatusFound    = "FOUND"
	StatusNotFound = "NOT_FOUND"
)

// File-mode classification outcomes.
const (
	StatusMatch    = "MATCH"
	StatusModified = "MODIFIED"
	StatusNew      = "NEW"
)

// ElementStatus is the classification of one element against the graph.
type ElementStatus struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// SnippetValidation is the result of snippet-mode validation.
type SnippetValidation struct {
	Context  string          `json:"context"`
	Results  []ElementStatus `json:"results"`
	Found    int             `json:"found"`
	NotFound int             `json:"notFound"`
	Errors   []string        `json:"errors,omitempty"`
}

// FileValidation is the result of file-mode validation.
type FileValidation struct {
	Context    string          `json:"context"`
	FilePath   string          `json:"filePath"`
	FileExists bool            `json:"fileExists"`
	Results    []ElementStatus `json:"results"`
	Matched    int             `json:"matched"`
	Modified   int             `json:"modified"`
	New        int             `json:"new"`
	Errors     []string        `json:"errors,omitempty"`
}

// ElementKey identifies an element for branch comparison. Uniqueness is
// scoped by (name, kind): a Function and a Class sharing a name are
// distinct elements.
type ElementKey struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// BranchDiff is the result of comparing two branches of one project.
type BranchDiff struct {
	Project       string       `json:"project"`
	SourceBranch  string       `json:"sourceBranch"`
	TargetBranch  string       `json:"targetBranch"`
	OnlyInSource  []ElementKey `json:"onlyInSource"`
	OnlyInTarget  []ElementKey `json:"onlyInTarget"`
	InBoth        []ElementKey `json:"inBoth"`
	SourceContext string       `json:"sourceContext"`
	TargetContext string       `json:"targetContext"`
}

// ContextInfo describes one partition and its element counts.
type ContextInfo struct {
	Context    string `json:"context"`
	Project    string `json:"project"`
	Branch     string `json:"branch"`
	Files      int    `json:"files"`
	Functions  int    `json:"functions"`
	Classes    int    `json:"classes"`
	Components int    `json:"components"`
}
