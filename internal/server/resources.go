package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const usageGuidelines = `# mcp-code-validator

Index source files into a branch-scoped code knowledge graph, then
validate generated or edited code against it.

Recommended workflow:
1. ` + "`index_file`" + ` (or ` + "`index_directory`" + `) for the project's sources.
2. ` + "`index_dependencies`" + ` with the package.json dependency map.
3. ` + "`validate_file`" + ` before applying an edit: MATCH means unchanged,
   MODIFIED means the body differs, NEW means the element is not in the
   graph yet (possibly hallucinated).
4. ` + "`validate_code`" + ` for loose snippets (existence only).
5. ` + "`compare_branches`" + ` to see which elements differ between branches.

Every tool accepts project_name and branch; together they form the
context "project:branch" isolating each branch's subgraph. Deleting a
context is irreversible.`

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "code-validator://usage-guidelines",
		Name:        "Usage Guidelines",
		Description: "Workflow and usage guidelines for the code validator MCP server",
		MIMEType:    "text/markdown",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      "code-validator://usage-guidelines",
					MIMEType: "text/markdown",
					Text:     usageGuidelines,
				},
			},
		}, nil
	})

	// Build a map of tool name -> schema JSON for dynamic dispatch.
	schemaMap := buildSchemaMap()

	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "code-validator://schemas/{tool_name}",
		Name:        "Tool Schema",
		Description: "JSON schema for the named tool's arguments",
		MIMEType:    "application/schema+json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		toolName := strings.TrimPrefix(uri, "code-validator://schemas/")
		schemaJSON, ok := schemaMap[toolName]
		if !ok {
			return nil, fmt.Errorf("unknown tool schema: %q", toolName)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/schema+json",
					Text:     schemaJSON,
				},
			},
		}, nil
	})
}

// buildSchemaMap constructs a map from tool name to its JSON schema
// string, derived from the args structs via jsonschema inference.
func buildSchemaMap() map[string]string {
	m := make(map[string]string)
	addSchema[IndexFileArgs](m, "index_file")
	addSchema[IndexDirectoryArgs](m, "index_directory")
	addSchema[ValidateCodeArgs](m, "validate_code")
	addSchema[ValidateFileArgs](m, "validate_file")
	addSchema[IndexDependenciesArgs](m, "index_dependencies")
	addSchema[ListContextsArgs](m, "list_contexts")
	addSchema[ListBranchesArgs](m, "list_branches")
	addSchema[CreateBranchArgs](m, "create_branch")
	addSchema[DeleteContextArgs](m, "delete_context")
	addSchema[CompareBranchesArgs](m, "compare_branches")
	return m
}

func addSchema[T any](m map[string]string, name string) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return
	}
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return
	}
	m[name] = string(schemaJSON)
}
