package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type promptParams struct {
	Prompt string `json:"prompt" jsonschema:"the prompt to send to breeze"`
}

func (h *handler) queryHandler(ctx context.Context, req *mcp.CallToolRequest, params promptParams) (*mcp.CallToolResult, any, error) {
	if params.Prompt == "" {
		return errorResult("prompt is required")
	}
	out, err := h.client.AI(ctx, params.Prompt)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

func (h *handler) chatHandler(ctx context.Context, req *mcp.CallToolRequest, params promptParams) (*mcp.CallToolResult, any, error) {
	if params.Prompt == "" {
		return errorResult("prompt is required")
	}
	out, err := h.client.Chat(ctx, params.Prompt)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

func (h *handler) codeHandler(ctx context.Context, req *mcp.CallToolRequest, params promptParams) (*mcp.CallToolResult, any, error) {
	if params.Prompt == "" {
		return errorResult("prompt is required")
	}
	out, err := h.client.Code(ctx, params.Prompt)
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(out)
}

type clearParams struct{}

func (h *handler) clearHandler(ctx context.Context, req *mcp.CallToolRequest, _ clearParams) (*mcp.CallToolResult, any, error) {
	if err := h.client.Clear(ctx); err != nil {
		return errorResult(err.Error())
	}
	return textResult("Conversation cleared.")
}

type batchParams struct {
	Prompts []string `json:"prompts" jsonschema:"prompts to run sequentially, in order"`
}

func (h *handler) batchHandler(ctx context.Context, req *mcp.CallToolRequest, params batchParams) (*mcp.CallToolResult, any, error) {
	if len(params.Prompts) == 0 {
		return errorResult("prompts is required")
	}
	results, err := h.client.Batch(ctx, params.Prompts)
	if err != nil {
		return errorResult(err.Error())
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "--- %d/%d: %s ---\n%s\n", i+1, len(results), params.Prompts[i], r)
	}
	return textResult(b.String())
}

type statusParams struct{}

func (h *handler) statusHandler(ctx context.Context, req *mcp.CallToolRequest, _ statusParams) (*mcp.CallToolResult, any, error) {
	path, err := h.client.Invoker.Resolver.Resolve()
	if err != nil {
		return errorResult(err.Error())
	}
	return textResult(fmt.Sprintf("breeze binary: %s", path))
}

type inspectParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID of a past breeze invocation"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}
	if h.store == nil {
		return errorResult("transcript recording is disabled")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "Started: %s (%s)\n", rec.Started.Format("2006-01-02 15:04:05"), rec.Duration)
	fmt.Fprintf(&b, "Args: %s\n", strings.Join(rec.Args, " "))
	fmt.Fprintf(&b, "Exit: %d\n", rec.ExitCode)
	if rec.Stdout != "" {
		fmt.Fprintf(&b, "\nStdout:\n%s\n", rec.Stdout)
	}
	if rec.Stderr != "" {
		fmt.Fprintf(&b, "\nStderr:\n%s\n", rec.Stderr)
	}
	return textResult(b.String())
}
