package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "typescript", DetectLanguage("src/app.ts"))
	assert.Equal(t, "typescript", DetectLanguage("src/App.tsx"))
	assert.Equal(t, "javascript", DetectLanguage("lib/index.js"))
	assert.Equal(t, "javascript", DetectLanguage("lib/Button.jsx"))
	assert.Equal(t, "typescript", DetectLanguage("unknown.rs"))
}

func TestParseFunctionDeclarations(t *testing.T) {
	source := `
export async function loadUser(id: string) {
  const user = await db.find(id);
  return user;
}

function helper(a, b) { return a + b; }
`
	elements := Parse("user.ts", source)
	require.Len(t, elements.Functions, 2)
	assert.Equal(t, "loadUser", elements.Functions[0].Name)
	assert.Equal(t, "typescript", elements.Functions[0].Language)
	assert.Contains(t, elements.Functions[0].Body, "db.find(id)")
	assert.Equal(t, "helper", elements.Functions[1].Name)
	assert.Equal(t, "a, b", elements.Functions[1].Params)
}

func TestParseArrowFunctions(t *testing.T) {
	source := `
const sum = (a: number, b: number) => a + b;
export const handler = async (req) => {
  respond(req);
};
`
	elements := Parse("handlers.ts", source)
	require.Len(t, elements.Functions, 2)
	assert.Equal(t, "sum", elements.Functions[0].Name)
	assert.Equal(t, "a + b;", elements.Functions[0].Body)
	assert.Equal(t, "handler", elements.Functions[1].Name)
	assert.Contains(t, elements.Functions[1].Body, "respond(req)")
}

func TestParseClassesKeepHeritageClause(t *testing.T) {
	source := `
export class OrderService extends BaseService implements Validator {
  total() { return this.sum; }
}
`
	elements := Parse("order.ts", source)
	require.Len(t, elements.Classes, 1)
	cls := elements.Classes[0]
	assert.Equal(t, "OrderService", cls.Name)
	assert.Contains(t, cls.Body, "extends BaseService")
	assert.Contains(t, cls.Body, "implements Validator")
	assert.Contains(t, cls.Body, "this.sum")
}

func TestParseReactComponent(t *testing.T) {
	source := `
export function UserCard({ name, avatar }) {
  const [open, setOpen] = useState(false);
  return <div className="card wide">{name}</div>;
}
`
	elements := Parse("UserCard.tsx", source)
	require.Len(t, elements.Components, 1)
	c := elements.Components[0]
	assert.Equal(t, "UserCard", c.Name)
	assert.Equal(t, []string{"name", "avatar"}, c.Props)
	assert.Equal(t, []string{"useState"}, c.Hooks)

	// The same source also reports the hook usage and css classes.
	require.Len(t, elements.Hooks, 1)
	assert.Equal(t, "useState", elements.Hooks[0].Name)
	assert.Equal(t, "builtin", elements.Hooks[0].Type)

	names := map[string]bool{}
	for _, fe := range elements.FrontendElements {
		names[fe.Name] = true
	}
	assert.True(t, names["card"])
	assert.True(t, names["wide"])
}

func TestParseCustomHook(t *testing.T) {
	source := `const data = useOrderTotals(id);`
	elements := Parse("totals.ts", source)
	require.Len(t, elements.Hooks, 1)
	assert.Equal(t, "useOrderTotals", elements.Hooks[0].Name)
	assert.Equal(t, "custom", elements.Hooks[0].Type)
}

func TestParseNextPatterns(t *testing.T) {
	source := `
export async function getServerSideProps(ctx) {
  return { props: {} };
}
export const generateMetadata = async () => {
  return { title: "Shop" };
};
`
	elements := Parse("page.tsx", source)
	require.Len(t, elements.Patterns, 2)
	assert.Equal(t, graph.NextJsPattern{Name: "getServerSideProps", Type: "data-fetching"}, elements.Patterns[0])
	assert.Equal(t, graph.NextJsPattern{Name: "generateMetadata", Type: "metadata"}, elements.Patterns[1])
}

func TestParseStyledComponents(t *testing.T) {
	source := `const Button = styled.button` + "`color: red;`" + `;`
	elements := Parse("button.ts", source)
	require.Len(t, elements.FrontendElements, 1)
	assert.Equal(t, "Button", elements.FrontendElements[0].Name)
	assert.Equal(t, "styled-component", elements.FrontendElements[0].Type)
}

func TestParseImports(t *testing.T) {
	source := `
import React, { useState, useEffect as effect } from 'react';
import * as path from "path";
import './styles.css';
`
	elements := Parse("app.tsx", source)
	require.Len(t, elements.Imports, 3)

	assert.Equal(t, "react", elements.Imports[0].Module)
	assert.ElementsMatch(t, []string{"React", "useState", "effect"}, elements.Imports[0].Names)

	assert.Equal(t, "path", elements.Imports[1].Module)
	assert.Equal(t, []string{"path"}, elements.Imports[1].Names)

	assert.Equal(t, "./styles.css", elements.Imports[2].Module)
	assert.Empty(t, elements.Imports[2].Names)
}

func TestParseExports(t *testing.T) {
	source := `
export const API_URL = "/api";
export default function Page() { return <main />; }
export class Client {}
export { helperA, helperB as b };
`
	elements := Parse("api.tsx", source)

	byName := map[string]string{}
	for _, exp := range elements.Exports {
		byName[exp.Name] = exp.Type
	}
	assert.Equal(t, "const", byName["API_URL"])
	assert.Equal(t, "default", byName["Page"])
	assert.Equal(t, "class", byName["Client"])
	assert.Equal(t, "named", byName["helperA"])
	assert.Equal(t, "named", byName["b"])
}

func TestParseEmptySource(t *testing.T) {
	elements := Parse("empty.ts", "")
	assert.True(t, elements.Empty())
}
