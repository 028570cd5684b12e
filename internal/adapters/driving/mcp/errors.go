// Package mcp exposes the ghmcp tools over the Model Context Protocol.
// Every tool call yields either one text item with the rendered payload or
// an error result carrying the JSON error record.
package mcp

import (
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// ErrMissingGitHubService is returned when the GitHub service is not provided.
var ErrMissingGitHubService = errors.New("mcp: github service is required")

// errorEnvelope is the wire form of a failed tool call.
type errorEnvelope struct {
	Error *domain.Error `json:"error"`
}

// textResult wraps a rendered payload.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts err into an IsError result. Errors that are not
// *domain.Error are reported as internal without their text.
func errorResult(err error, operation string) *mcp.CallToolResult {
	derr := domain.AsError(err, operation)
	data, mErr := json.MarshalIndent(errorEnvelope{Error: derr}, "", "  ")
	if mErr != nil {
		data = []byte(`{"error":{"kind":"internal","code":500,"message":"Failed to encode error."}}`)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
