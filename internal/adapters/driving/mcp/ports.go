package mcp

import (
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// GitHub runs the read-only GitHub tools.
	GitHub driving.GitHubService

	// Articles saves and summarizes web articles. Optional: the article
	// tools are not registered without it.
	Articles driving.ArticleService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.GitHub == nil {
		return ErrMissingGitHubService
	}
	return nil
}
