// Package mcpserver exposes page generation and HTML extraction to MCP
// clients as the generate_page and extract_html tools.
package mcpserver

import (
	"context"
	"errors"

	"github.com/germanamz/pagecraft/pkg/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Name is the implementation name reported to clients.
const Name = "pagecraft"

// Generator is the part of engine.Engine the tools need.
type Generator interface {
	IsConfigured() bool
	GenerateCode(ctx context.Context, prompt string) engine.Result
}

// ErrNotConfigured is returned by generate_page before a provider is set up.
var ErrNotConfigured = errors.New("AI nie jest skonfigurowane. Skonfiguruj dostawcę w ustawieniach.") //nolint:staticcheck // user-facing message

// Server serves the page tools backed by a Generator.
type Server struct {
	gen    Generator
	server *mcp.Server
}

// New creates a Server with both tools registered.
func New(gen Generator, version string) *Server {
	s := &Server{
		gen: gen,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: version,
		}, nil),
	}

	s.server.AddTool(generatePageTool, s.generatePage)
	s.server.AddTool(extractHTMLTool, s.extractHTML)

	return s
}

// Serve handles MCP requests on stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.run(ctx, &mcp.StdioTransport{})
}

// run serves on transport. Tests call it with in-memory transports.
func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}
