package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Fixed endpoints.
const (
	SearchIssuesPath = "/search/issues"
	SearchCodePath   = "/search/code"
	RateLimitPath    = "/rate_limit"
)

// PullsPath returns the pull request listing endpoint of repo.
func PullsPath(repo Repository) string {
	return repo.Path() + "/pulls"
}

// PullPath returns the endpoint of one pull request.
func PullPath(repo Repository, number int) string {
	return PullsPath(repo) + "/" + strconv.Itoa(number)
}

// IssuePath returns the endpoint of one issue.
func IssuePath(repo Repository, number int) string {
	return repo.Path() + "/issues/" + strconv.Itoa(number)
}

// ContentsPath returns the contents endpoint for path inside repo. An empty
// path addresses the repository root. Each segment is escaped; "." and ".."
// segments are rejected.
func ContentsPath(repo Repository, path string) (string, error) {
	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return "", InvalidArgument(
				fmt.Sprintf("Invalid path: '%s'. Relative segments are not allowed.", path),
				map[string]any{"path": path},
			)
		}
		segments = append(segments, url.PathEscape(seg))
	}
	if len(segments) == 0 {
		return repo.Path() + "/contents", nil
	}
	return repo.Path() + "/contents/" + strings.Join(segments, "/"), nil
}

// ResolveWebURL converts an API endpoint to the matching github.com page.
// Endpoints without a web page resolve to "".
func ResolveWebURL(endpoint string) string {
	rest, ok := strings.CutPrefix(endpoint, "/repos/")
	if !ok {
		return ""
	}
	parts := strings.SplitN(rest, "/", 4)
	if len(parts) < 2 {
		return ""
	}
	base := "https://github.com/" + parts[0] + "/" + parts[1]
	if len(parts) == 2 {
		return base
	}
	switch parts[2] {
	case "pulls":
		if len(parts) == 4 {
			return base + "/pull/" + parts[3]
		}
		return base + "/pulls"
	case "issues":
		if len(parts) == 4 {
			return base + "/issues/" + parts[3]
		}
		return base + "/issues"
	case "contents":
		if len(parts) == 4 {
			return base + "/blob/HEAD/" + parts[3]
		}
		return base
	}
	return ""
}
