package domain

// AuthMethod describes how upstream calls are authenticated.
type AuthMethod string

const (
	// AuthMethodNone sends requests anonymously.
	AuthMethodNone AuthMethod = "none"
	// AuthMethodPAT sends a personal access token as a bearer credential.
	AuthMethodPAT AuthMethod = "pat"
)

// PlaceholderToken is the sample value shipped in example env files. It is
// treated as no credential at all.
const PlaceholderToken = "your_github_personal_access_token_here"
