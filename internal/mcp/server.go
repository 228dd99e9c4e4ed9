// Package mcp exposes the edition advisor to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/diagrams"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the advisor tools.
type Server struct {
	ds      *dataset.Dataset
	diagram diagrams.Options
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over ds. Diagram labels come from
// diagram; its Path is ignored.
func NewServer(ds *dataset.Dataset, diagram diagrams.Options) *Server {
	diagram.Path = nil
	s := &Server{
		ds:      ds,
		diagram: diagram,
	}

	s.mcp = server.NewMCPServer(
		"edition-advisor",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(recommendEditionTool, s.handleRecommendEdition)
	s.mcp.AddTool(compareEditionsTool, s.handleCompareEditions)
	s.mcp.AddTool(describeNodeTool, s.handleDescribeNode)
	s.mcp.AddTool(decisionDiagramTool, s.handleDecisionDiagram)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

