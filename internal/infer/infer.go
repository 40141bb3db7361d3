// Package infer derives call, instantiation and inheritance
// relationships from element source text.
//
// The shipped implementation is a lexical heuristic, not semantic
// resolution: it over-reports bare names that coincide with unrelated
// identifiers, and it skips qualified calls (this.save(), console.log())
// entirely because the receiver cannot be resolved lexically. The
// Strategy seam exists so a real static-analysis pass could replace it
// without touching the rest of the engine.
package infer

import (
	"regexp"
	"strings"
)

// FunctionRefs are the outbound references found in one function body.
type FunctionRefs struct {
	Calls        []string
	Instantiates []string
}

// ClassRefs are the inheritance references found in one class body.
type ClassRefs struct {
	Extends    string // single superclass, first match wins
	Implements []string
}

// Strategy extracts relationships from element bodies.
type Strategy interface {
	FunctionRefs(body string) FunctionRefs
	ClassRefs(body string) ClassRefs
}

// stoplist excludes control-flow keywords and common globals that look
// like call sites to the token scan.
var stoplist = map[string]bool{
	"if":         true,
	"for":        true,
	"while":      true,
	"return":     true,
	"console":    true,
	"typeof":     true,
	"instanceof": true,
}

var (
	callPattern       = regexp.MustCompile(`(new\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)
	extendsPattern    = regexp.MustCompile(`extends\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	implementsPattern = regexp.MustCompile(`implements\s+([^{]+)`)
	identPattern      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
)

// Lexical is the regex-based Strategy.
type Lexical struct{}

// NewLexical returns the lexical inference strategy.
func NewLexical() *Lexical { return &Lexical{} }

// FunctionRefs scans a function body for unqualified `identifier(` call
// sites and `new Identifier(` instantiations. Qualified calls (x.f())
// are skipped; names are deduplicated; stoplist names are dropped from
// the call set.
func (l *Lexical) FunctionRefs(body string) FunctionRefs {
	var refs FunctionRefs
	seenCalls := map[string]bool{}
	seenNews := map[string]bool{}

	for _, loc := range callPattern.FindAllStringSubmatchIndex(body, -1) {
		// Member access: the receiver is unknown without type
		// information, so x.f() never becomes a CALLS candidate.
		if loc[0] > 0 && body[loc[0]-1] == '.' {
			continue
		}
		name := body[loc[4]:loc[5]]
		if loc[2] >= 0 {
			if !seenNews[name] {
				seenNews[name] = true
				refs.Instantiates = append(refs.Instantiates, name)
			}
			continue
		}
		if stoplist[name] || seenCalls[name] {
			continue
		}
		seenCalls[name] = true
		refs.Calls = append(refs.Calls, name)
	}
	return refs
}

// ClassRefs extracts at most one `extends` superclass and every name
// from an `implements A, B, C` clause.
func (l *Lexical) ClassRefs(body string) ClassRefs {
	var refs ClassRefs

	if m := extendsPattern.FindStringSubmatch(body); m != nil {
		refs.Extends = m[1]
	}

	if m := implementsPattern.FindStringSubmatch(body); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			name := identPattern.FindString(strings.TrimSpace(part))
			if name == "" || name == "extends" {
				continue
			}
			refs.Implements = append(refs.Implements, name)
		}
	}
	return refs
}
