// Package domain defines the core types of ghmcp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Value: An order-preserving JSON tree returned by the gateway
//   - Request: One upstream call (method, endpoint, ordered params)
//   - Error: The single failure value that crosses the tool boundary
//   - RenderOptions: The caller's format and detail selection
//   - Repository: An owner/name pair and its endpoint builders
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. Besides the standard library it
// only imports the JSON decoder (gjson) and the fingerprint hash (xxh3).
// All other packages depend on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, gjson, xxh3
//   - Cannot Import: Any internal/ package
package domain
