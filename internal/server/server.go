// Package server exposes the graph engine over MCP.
package server

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/compare"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/config"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/diff"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/indexer"
	"github.com/robertluiz/mcp-code-validator-sub000/internal/store"
)

const serverName = "mcp-code-validator"
const serverVersion = "1.0.0"

// Server wires the engine components behind MCP tools.
type Server struct {
	mcpServer  *mcp.Server
	store      *store.Store
	indexer    *indexer.Indexer
	validator  *diff.Validator
	comparator *compare.Comparator
	defaults   config.Defaults
	log        *zap.Logger
}

// New assembles the MCP server and registers its tools and resources.
func New(st *store.Store, ix *indexer.Indexer, defaults config.Defaults, log *zap.Logger) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
		store:      st,
		indexer:    ix,
		validator:  diff.New(st),
		comparator: compare.New(st),
		defaults:   defaults,
		log:        log,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until the client disconnects or the context
// is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving MCP over stdio", zap.String("server", serverName))
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: " + err.Error())
	}
	return textResult(string(data))
}
