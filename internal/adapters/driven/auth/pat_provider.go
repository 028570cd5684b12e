package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
)

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// ErrNoToken is returned by GetToken when the provider holds no usable token.
var ErrNoToken = errors.New("auth: no personal access token configured")

// PATProvider serves a static personal access token. PATs don't expire
// and don't require refresh.
type PATProvider struct {
	token string
}

// NewPATProvider creates a token provider for a personal access token.
func NewPATProvider(token string) *PATProvider {
	return &PATProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the PAT.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	if !p.IsAuthenticated() {
		return "", ErrNoToken
	}
	return p.token, nil
}

// AuthMethod returns AuthMethodPAT.
func (p *PATProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodPAT
}

// IsAuthenticated returns true if the token is set and is not the sample
// placeholder.
func (p *PATProvider) IsAuthenticated() bool {
	return usable(p.token)
}

// NewTokenProvider returns a PATProvider for a usable token and a
// NullTokenProvider otherwise.
func NewTokenProvider(token string) driven.TokenProvider {
	if !usable(token) {
		return NewNullTokenProvider()
	}
	return NewPATProvider(token)
}

func usable(token string) bool {
	token = strings.TrimSpace(token)
	return token != "" && token != domain.PlaceholderToken
}
