// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Gateway: Dispatches one request to the GitHub REST API
//   - ConfigStore: Application configuration
//   - TokenProvider: Supplies the credential for upstream calls
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResponseCache: Memoizes GET responses. Without it every call goes upstream.
//   - ArticleFetcher, MarkdownConverter: Back the article tools. Without
//     them read_articles and summarize_articles are not registered.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
