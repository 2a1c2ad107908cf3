// Package mcp provides the breezeway MCP server, exposing the breeze
// bridge operations as tools and publishing model instructions.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yossideutsch/breezeway"
	"github.com/yossideutsch/breezeway/internal/transcript"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	client *breezeway.Client
	store  transcript.Store // nil when transcript recording is disabled
}

// NewServer creates an MCP server with all breezeway tools registered.
// store should be the same store the client's invoker records into, so
// breeze_inspect can drill into past runs.
func NewServer(client *breezeway.Client, store transcript.Store) *mcp.Server {
	h := &handler{client: client, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "breezeway", Version: breezeway.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breeze_query",
		Description: "Send a single prompt to the local breeze AI and return its response.",
	}, h.queryHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "breeze_chat",
		Description: `Send one conversational turn to breeze.

The breeze executable keeps the conversation history on disk across calls;
use breeze_clear to start over.`,
	}, h.chatHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breeze_code",
		Description: "Ask breeze to generate code for a prompt.",
	}, h.codeHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breeze_clear",
		Description: "Discard the conversation history kept by the breeze executable.",
	}, h.clearHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "breeze_batch",
		Description: `Run several prompts sequentially, in order.

The first failure aborts the batch; no partial results are returned.`,
	}, h.batchHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breeze_status",
		Description: "Report which breeze binary would be invoked, or how to install one.",
	}, h.statusHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "breeze_inspect",
		Description: "Fetch the full transcript (args, exit code, stdout, stderr) of a past invocation by run ID.",
	}, h.inspectHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
