package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/pagecraft/pkg/htmlextract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var generatePageTool = &mcp.Tool{
	Name:        "generate_page",
	Description: "Generate a complete HTML page from a natural-language description. Returns JSON with message, filename and code.",
	InputSchema: json.RawMessage(`{"type":"object","properties":{"prompt":{"type":"string","description":"Description of the page to build"}},"required":["prompt"]}`),
}

var extractHTMLTool = &mcp.Tool{
	Name:        "extract_html",
	Description: "Reduce a generated code blob (fenced, labeled or with surrounding prose) to the renderable HTML document.",
	InputSchema: json.RawMessage(`{"type":"object","properties":{"code":{"type":"string","description":"Raw generated code"}},"required":["code"]}`),
}

type generateInput struct {
	Prompt string `json:"prompt"`
}

type extractInput struct {
	Code string `json:"code"`
}

func (s *Server) generatePage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in generateInput
	if err := decodeArgs(req, &in); err != nil {
		return toolError(fmt.Errorf("generate_page: %w", err)), nil
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return toolError(errors.New("generate_page: prompt is required")), nil
	}
	if !s.gen.IsConfigured() {
		return toolError(ErrNotConfigured), nil
	}

	out, err := json.Marshal(s.gen.GenerateCode(ctx, in.Prompt))
	if err != nil {
		return toolError(fmt.Errorf("generate_page: %w", err)), nil
	}

	return textResult(string(out)), nil
}

func (s *Server) extractHTML(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in extractInput
	if err := decodeArgs(req, &in); err != nil {
		return toolError(fmt.Errorf("extract_html: %w", err)), nil
	}

	return textResult(htmlextract.Extract(in.Code)), nil
}

// decodeArgs unmarshals the call arguments; absent arguments decode as {}.
func decodeArgs(req *mcp.CallToolRequest, v any) error {
	args := req.Params.Arguments
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// toolError reports err as a tool result with IsError set, so clients see the
// message instead of a protocol error.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
