// Package parser extracts typed code elements from JavaScript and
// TypeScript source text using lexical heuristics. Output lists are
// unordered and may repeat the same logical element across detection
// passes; the graph engine's identity-based upsert collapses those.
package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

// Languages by file extension.
var extLanguages = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
}

// DetectLanguage maps a file path to its language, defaulting to
// typescript for unknown extensions so snippets still parse.
func DetectLanguage(path string) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "typescript"
}

// Supported reports whether the file extension is one the parser
// understands.
func Supported(path string) bool {
	_, ok := extLanguages[strings.ToLower(filepath.Ext(path))]
	return ok
}

var (
	funcDeclPattern    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(([^)]*)\)`)
	arrowConstPattern  = regexp.MustCompile(`(?m)^\s*(?:export\s+)?const\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*(?::[^=\n]+)?=\s*(?:async\s+)?\(([^)]*)\)\s*=>`)
	classPattern       = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	hookCallPattern    = regexp.MustCompile(`\b(use[A-Z][A-Za-z0-9_$]*)\s*\(`)
	styledPattern      = regexp.MustCompile(`const\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*styled[.(]([A-Za-z0-9_$]*)`)
	classNamePattern   = regexp.MustCompile(`className\s*=\s*["']([^"']+)["']`)
	importPattern      = regexp.MustCompile(`import\s+(?:([^'"]+?)\s+from\s+)?['"]([^'"]+)['"]`)
	exportListPattern  = regexp.MustCompile(`export\s*\{([^}]+)\}`)
	exportDeclPattern  = regexp.MustCompile(`export\s+(default\s+)?(?:async\s+)?(const|let|var|function|class|interface|type|enum)\s+([A-Za-z_$][A-Za-z0-9_$]*)?`)
	jsxPattern         = regexp.MustCompile(`<[A-Za-z][^>]*>`)
	destructurePattern = regexp.MustCompile(`\{([^}]*)\}`)
)

var builtinHooks = map[string]bool{
	"useState":            true,
	"useEffect":           true,
	"useContext":          true,
	"useReducer":          true,
	"useCallback":         true,
	"useMemo":             true,
	"useRef":              true,
	"useImperativeHandle": true,
	"useLayoutEffect":     true,
	"useTransition":       true,
}

// nextPatterns maps recognized Next.js export names to pattern types.
var nextPatterns = map[string]string{
	"getServerSideProps":   "data-fetching",
	"getStaticProps":       "data-fetching",
	"getStaticPaths":       "data-fetching",
	"getInitialProps":      "data-fetching",
	"generateStaticParams": "data-fetching",
	"generateMetadata":     "metadata",
	"middleware":           "route",
}

// Parse extracts all recognizable elements from one source unit.
func Parse(path, source string) *graph.Elements {
	lang := DetectLanguage(path)
	elements := &graph.Elements{}

	parseFunctions(source, lang, elements)
	parseClasses(source, lang, elements)
	parseHooks(source, lang, elements)
	parseFrontend(source, elements)
	parseImports(source, elements)
	parseExports(source, elements)
	return elements
}

func parseFunctions(source, lang string, elements *graph.Elements) {
	for _, loc := range funcDeclPattern.FindAllStringSubmatchIndex(source, -1) {
		name := source[loc[2]:loc[3]]
		params := source[loc[4]:loc[5]]
		body := braceBlock(source, loc[1])
		addFunction(elements, lang, name, params, body)
	}
	for _, loc := range arrowConstPattern.FindAllStringSubmatchIndex(source, -1) {
		name := source[loc[2]:loc[3]]
		params := source[loc[4]:loc[5]]
		body := arrowBody(source, loc[1])
		addFunction(elements, lang, name, params, body)
	}
}

func addFunction(elements *graph.Elements, lang, name, params, body string) {
	fn := graph.Function{Name: name, Language: lang, Body: body, Params: strings.TrimSpace(params)}
	elements.Functions = append(elements.Functions, fn)

	// PascalCase functions that render markup are React components.
	if name[0] >= 'A' && name[0] <= 'Z' && jsxPattern.MatchString(body) {
		elements.Components = append(elements.Components, graph.Component{
			Name:     name,
			Language: lang,
			Body:     body,
			Props:    destructuredNames(params),
			Hooks:    hookNames(body),
		})
	}

	if patternType, ok := nextPatterns[name]; ok {
		elements.Patterns = append(elements.Patterns, graph.NextJsPattern{Name: name, Type: patternType})
	}
}

func parseClasses(source, lang string, elements *graph.Elements) {
	for _, loc := range classPattern.FindAllStringSubmatchIndex(source, -1) {
		name := source[loc[2]:loc[3]]
		// Body starts at the class keyword so the heritage clause
		// (extends/implements) stays visible to relationship inference.
		body := source[loc[0]:blockEnd(source, loc[1])]
		elements.Classes = append(elements.Classes, graph.Class{Name: name, Language: lang, Body: body})
	}
}

func parseHooks(source, lang string, elements *graph.Elements) {
	seen := map[string]bool{}
	for _, name := range hookNames(source) {
		if seen[name] {
			continue
		}
		seen[name] = true
		hookType := "custom"
		if builtinHooks[name] {
			hookType = "builtin"
		}
		elements.Hooks = append(elements.Hooks, graph.Hook{Name: name, Type: hookType, Language: lang})
	}
}

func parseFrontend(source string, elements *graph.Elements) {
	for _, m := range styledPattern.FindAllStringSubmatch(source, -1) {
		elements.FrontendElements = append(elements.FrontendElements, graph.FrontendElement{
			Name: m[1],
			Type: "styled-component",
		})
	}
	seen := map[string]bool{}
	for _, m := range classNamePattern.FindAllStringSubmatch(source, -1) {
		for _, cls := range strings.Fields(m[1]) {
			if seen[cls] {
				continue
			}
			seen[cls] = true
			elements.FrontendElements = append(elements.FrontendElements, graph.FrontendElement{
				Name: cls,
				Type: "css-class",
			})
		}
	}
}

func parseImports(source string, elements *graph.Elements) {
	for _, m := range importPattern.FindAllStringSubmatch(source, -1) {
		elements.Imports = append(elements.Imports, graph.Import{
			Module: m[2],
			Names:  importedNames(m[1]),
		})
	}
}

// importedNames splits an import clause into its bound names: default
// imports, named lists with aliases, and namespace imports.
func importedNames(clause string) []string {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}
	var names []string
	if open := strings.Index(clause, "{"); open >= 0 {
		closeIdx := strings.Index(clause, "}")
		if closeIdx > open {
			for _, part := range strings.Split(clause[open+1:closeIdx], ",") {
				name := strings.TrimSpace(part)
				if as := strings.Index(name, " as "); as >= 0 {
					name = strings.TrimSpace(name[as+4:])
				}
				if name != "" {
					names = append(names, name)
				}
			}
		}
		clause = strings.TrimSpace(clause[:open])
		clause = strings.TrimSuffix(strings.TrimSpace(clause), ",")
	}
	if star := strings.Index(clause, "* as "); star >= 0 {
		names = append(names, strings.TrimSpace(clause[star+5:]))
	} else if clause != "" && clause != "type" {
		names = append(names, strings.TrimSuffix(clause, ","))
	}
	return names
}

func parseExports(source string, elements *graph.Elements) {
	for _, m := range exportDeclPattern.FindAllStringSubmatch(source, -1) {
		name := m[3]
		if name == "" {
			continue
		}
		exportType := m[2]
		if strings.TrimSpace(m[1]) == "default" {
			exportType = "default"
		}
		elements.Exports = append(elements.Exports, graph.Export{Name: name, Type: exportType})
	}
	for _, m := range exportListPattern.FindAllStringSubmatch(source, -1) {
		for _, part := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(part)
			if as := strings.Index(name, " as "); as >= 0 {
				name = strings.TrimSpace(name[as+4:])
			}
			if name != "" && name != "default" {
				elements.Exports = append(elements.Exports, graph.Export{Name: name, Type: "named"})
			}
		}
	}
}

func hookNames(text string) []string {
	var names []string
	for _, m := range hookCallPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

func destructuredNames(params string) []string {
	m := destructurePattern.FindStringSubmatch(params)
	if m == nil {
		return nil
	}
	var names []string
	for _, part := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(part)
		if colon := strings.Index(name, ":"); colon >= 0 {
			name = strings.TrimSpace(name[:colon])
		}
		if eq := strings.Index(name, "="); eq >= 0 {
			name = strings.TrimSpace(name[:eq])
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// braceBlock returns the source from `from` through the end of the
// first balanced brace block after it.
func braceBlock(source string, from int) string {
	return source[from:blockEnd(source, from)]
}

// blockEnd finds the index just past the brace block that opens at or
// after `from`. If braces never balance (truncated input), the rest of
// the source is the block.
func blockEnd(source string, from int) int {
	depth := 0
	opened := false
	for i := from; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1
			}
		}
	}
	return len(source)
}

// arrowBody returns an arrow function's body: a brace block when
// present, otherwise the expression up to the end of the line.
func arrowBody(source string, from int) string {
	i := from
	for i < len(source) && (source[i] == ' ' || source[i] == '\t' || source[i] == '\n') {
		i++
	}
	if i < len(source) && source[i] == '{' {
		return braceBlock(source, i)
	}
	if nl := strings.IndexByte(source[i:], '\n'); nl >= 0 {
		return strings.TrimSpace(source[i : i+nl])
	}
	return strings.TrimSpace(source[i:])
}
