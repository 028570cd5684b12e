package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Repository identifies a GitHub repository as owner/name.
type Repository struct {
	Owner string
	Name  string
}

// String returns the owner/name form.
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Path returns the /repos/{owner}/{name} endpoint prefix with both segments
// escaped.
func (r Repository) Path() string {
	return "/repos/" + url.PathEscape(r.Owner) + "/" + url.PathEscape(r.Name)
}

// ParseRepository splits an owner/name identifier. It requires exactly one
// separator and two non-empty segments other than "." and "..", and never
// touches the network.
func ParseRepository(s string) (Repository, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || !validSegment(parts[0]) || !validSegment(parts[1]) {
		return Repository{}, InvalidArgument(
			fmt.Sprintf("Invalid repository format: '%s'. Expected format: 'owner/repo'.", s),
			map[string]any{"repository": s},
		).WithSuggestion("Use the format 'owner/repo' (e.g., 'facebook/react').")
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".."
}
