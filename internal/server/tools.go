package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/graph"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/parser"
)

// Arguments structs

type IndexFileArgs struct {
	Code        string `json:"code" jsonschema:"required,description:Source code of the file to index"`
	FilePath    string `json:"file_path" jsonschema:"required,description:Path of the file within the project"`
	ProjectName string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch      string `json:"branch" jsonschema:"description:Branch partition; defaults to 'main'"`
}

type IndexDirectoryArgs struct {
	Path        string `json:"path" jsonschema:"required,description:Directory to walk and index"`
	ProjectName string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch      string `json:"branch" jsonschema:"description:Branch partition; defaults to 'main'"`
}

type ValidateCodeArgs struct {
	Code        string `json:"code" jsonschema:"required,description:Code snippet whose elements are checked for existence"`
	Language    string `json:"language" jsonschema:"description:Snippet language; defaults to typescript"`
	ProjectName string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch      string `json:"branch" jsonschema:"description:Branch partition; defaults to 'main'"`
}

type ValidateFileArgs struct {
	Code        string `json:"code" jsonschema:"required,description:New content of the file"`
	FilePath    string `json:"file_path" jsonschema:"required,description:Path of the file to diff against the graph"`
	ProjectName string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch      string `json:"branch" jsonschema:"description:Branch partition; defaults to 'main'"`
}

type IndexDependenciesArgs struct {
	Dependencies map[string]string `json:"dependencies" jsonschema:"required,description:Package name to version map (package.json dependencies)"`
	ProjectName  string            `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch       string            `json:"branch" jsonschema:"description:Branch partition; defaults to 'main'"`
}

type ListContextsArgs struct{}

type ListBranchesArgs struct {
	ProjectName string `json:"project_name" jsonschema:"required,description:Project whose branches to list"`
}

type CreateBranchArgs struct {
	ProjectName string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	Branch      string `json:"branch" jsonschema:"required,description:Branch to check/create"`
}

type DeleteContextArgs struct {
	ProjectName string `json:"project_name" jsonschema:"required,description:Project of the context to delete"`
	Branch      string `json:"branch" jsonschema:"required,description:Branch of the context to delete"`
}

type CompareBranchesArgs struct {
	ProjectName  string `json:"project_name" jsonschema:"description:Project partition; defaults to 'default'"`
	SourceBranch string `json:"source_branch" jsonschema:"required,description:Branch on the left of the comparison"`
	TargetBranch string `json:"target_branch" jsonschema:"required,description:Branch on the right of the comparison"`
}

// resolve applies server-level defaults before building the context key.
func (s *Server) resolve(project, branch string) string {
	if project == "" {
		project = s.defaults.Project
	}
	if branch == "" {
		branch = s.defaults.Branch
	}
	return graph.ResolveContext(project, branch)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "index_file",
		Description: "Parses a source file and indexes its elements into the knowledge graph",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IndexFileArgs) (*mcp.CallToolResult, any, error) {
		gctx := s.resolve(args.ProjectName, args.Branch)
		elements := parser.Parse(args.FilePath, args.Code)
		result := s.indexer.IndexElements(ctx, gctx, args.FilePath, elements)
		return jsonResult(result), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "index_directory",
		Description: "Walks a directory tree and indexes every supported source file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IndexDirectoryArgs) (*mcp.CallToolResult, any, error) {
		gctx := s.resolve(args.ProjectName, args.Branch)
		results, err := s.indexer.IndexDirectory(ctx, gctx, args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("Walk failed: %v", err)), nil, nil
		}
		return jsonResult(results), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "validate_code",
		Description: "Checks whether the functions and classes in a snippet exist in the graph",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ValidateCodeArgs) (*mcp.CallToolResult, any, error) {
		gctx := s.resolve(args.ProjectName, args.Branch)
		path := "snippet.ts"
		if args.Language == "javascript" {
			path = "snippet.js"
		}
		elements := parser.Parse(path, args.Code)
		return jsonResult(s.validator.ValidateSnippet(ctx, gctx, elements)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "validate_file",
		Description: "Diffs a file's new content against the stored graph (MATCH/MODIFIED/NEW)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ValidateFileArgs) (*mcp.CallToolResult, any, error) {
		gctx := s.resolve(args.ProjectName, args.Branch)
		elements := parser.Parse(args.FilePath, args.Code)
		return jsonResult(s.validator.ValidateFile(ctx, gctx, args.FilePath, elements)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "index_dependencies",
		Description: "Indexes project dependencies as Library nodes with their provided APIs",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args IndexDependenciesArgs) (*mcp.CallToolResult, any, error) {
		if len(args.Dependencies) == 0 {
			return errorResult("dependencies map is required"), nil, nil
		}
		gctx := s.resolve(args.ProjectName, args.Branch)
		return jsonResult(s.indexer.IndexLibraries(ctx, gctx, args.Dependencies)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_contexts",
		Description: "Lists every project:branch context in the graph with element counts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListContextsArgs) (*mcp.CallToolResult, any, error) {
		infos, err := s.store.ListContexts(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}
		if len(infos) == 0 {
			return textResult("No contexts found."), nil, nil
		}
		return jsonResult(infos), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_branches",
		Description: "Lists the branches of one project with element counts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListBranchesArgs) (*mcp.CallToolResult, any, error) {
		if args.ProjectName == "" {
			return errorResult("project_name is required"), nil, nil
		}
		infos, err := s.store.ListBranches(ctx, args.ProjectName)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}
		if len(infos) == 0 {
			return textResult(fmt.Sprintf("No branches found for project %q.", args.ProjectName)), nil, nil
		}
		return jsonResult(infos), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_branch",
		Description: "Checks a branch context; contexts come into existence through indexing",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CreateBranchArgs) (*mcp.CallToolResult, any, error) {
		if args.Branch == "" {
			return errorResult("branch is required"), nil, nil
		}
		gctx := s.resolve(args.ProjectName, args.Branch)
		exists, err := s.store.ContextExists(ctx, gctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Query failed: %v", err)), nil, nil
		}
		if exists {
			return textResult(fmt.Sprintf("Context %q already exists.", gctx)), nil, nil
		}
		// No write happens here: the first index_file call under this
		// context will materialize it.
		return textResult(fmt.Sprintf("Context %q is ready; index files to populate it.", gctx)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_context",
		Description: "Irreversibly deletes every node and edge of one project:branch context",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DeleteContextArgs) (*mcp.CallToolResult, any, error) {
		if args.ProjectName == "" || args.Branch == "" {
			return errorResult("project_name and branch are required"), nil, nil
		}
		gctx := graph.ResolveContext(args.ProjectName, args.Branch)
		deleted, err := s.store.DeleteContext(ctx, gctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Delete failed: %v", err)), nil, nil
		}
		return textResult(fmt.Sprintf("Deleted %d nodes from context %q.", deleted, gctx)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compare_branches",
		Description: "Compares the element sets of two branches of one project",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CompareBranchesArgs) (*mcp.CallToolResult, any, error) {
		if args.SourceBranch == "" || args.TargetBranch == "" {
			return errorResult("source_branch and target_branch are required"), nil, nil
		}
		project := args.ProjectName
		if project == "" {
			project = s.defaults.Project
		}
		result, err := s.comparator.Compare(ctx, project, args.SourceBranch, args.TargetBranch)
		if err != nil {
			return errorResult(fmt.Sprintf("Compare failed: %v", err)), nil, nil
		}
		return jsonResult(result), nil, nil
	})
}
