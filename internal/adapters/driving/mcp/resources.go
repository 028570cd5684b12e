package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ghmcp resources.
	uriScheme = "ghmcp://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "errors",
		Name:        "errors",
		Description: "Error kinds a tool call can report, with their default suggestions",
		MIMEType:    "application/json",
	}, s.handleErrorsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "rate_limit",
		Name:        "rate-limit",
		Description: "Current GitHub API rate limit status",
		MIMEType:    "application/json",
	}, s.handleRateLimitResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "repos/{owner}/{repo}",
		Name:        "repository",
		Description: "Summary of a GitHub repository",
		MIMEType:    "application/json",
	}, s.handleRepositoryResource)
}

// handleErrorsResource lists the error kinds.
func (s *Server) handleErrorsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type kindInfo struct {
		Kind       domain.Kind `json:"kind"`
		Suggestion string      `json:"suggestion"`
	}

	infos := make([]kindInfo, len(domain.Kinds))
	for i, k := range domain.Kinds {
		infos[i] = kindInfo{Kind: k, Suggestion: domain.Suggestion(k)}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling error kinds: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleRateLimitResource returns the /rate_limit payload.
func (s *Server) handleRateLimitResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	out, err := s.ports.GitHub.Fetch(ctx, domain.NewRequest(domain.RateLimitPath), domain.RenderOptions{
		Format: domain.FormatStructured,
		Detail: domain.DetailDetailed,
	})
	if err != nil {
		return nil, fmt.Errorf("reading rate limit: %w", err)
	}
	return jsonResource(req.Params.URI, out), nil
}

// handleRepositoryResource returns the concise repository record.
func (s *Server) handleRepositoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repo, ok := extractRepository(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	out, err := s.ports.GitHub.Fetch(ctx, domain.NewRequest(repo.Path()), domain.RenderOptions{
		Format: domain.FormatStructured,
		Detail: domain.DetailConcise,
	})
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading repository %s: %w", repo, err)
	}
	return jsonResource(req.Params.URI, out), nil
}

// extractRepository parses a URI like ghmcp://repos/{owner}/{repo}.
func extractRepository(uri string) (domain.Repository, bool) {
	const prefix = uriScheme + "repos/"

	if !strings.HasPrefix(uri, prefix) {
		return domain.Repository{}, false
	}

	repo, err := domain.ParseRepository(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return domain.Repository{}, false
	}
	return repo, true
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
