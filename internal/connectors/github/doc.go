// Package github implements the gateway to the GitHub REST API.
//
// A [Client] turns a [domain.Request] into one HTTP call and reports the
// outcome as either a decoded [domain.Value] or a [*domain.Error]. Nothing
// else crosses the package boundary: transport failures, upstream error
// statuses and exhausted quota all become error records with a stable kind,
// code and suggestion.
//
// # Authentication
//
// A personal access token is attached as a bearer credential through an
// oauth2 transport. When no token is configured, or the configured value is
// the sample placeholder, calls go out anonymously and the lower anonymous
// quota applies.
//
// # Rate Limiting
//
// Every response passes through [CheckRateLimit] before its status is
// looked at. A remaining count at or below [LowWaterMark] logs a warning; a
// remaining count of zero fails the call with a rate_limited error carrying
// the seconds until reset. The guard keeps no state between calls, so
// go-github's own pre-flight check is bypassed.
//
// An optional [Throttle] spaces requests on the client side.
//
// # Error Mapping
//
// [NormalizeStatus] maps upstream statuses:
//
//   - 401: unauthenticated
//   - 403 with zero remaining quota: rate_limited (429)
//   - 403: forbidden
//   - 404: not_found
//   - 422: validation_failed (400)
//   - anything else: upstream_error with the literal status
//
// [NormalizeTransport] maps failures without a response to timeout (408),
// network_unavailable (503) or internal (500).
package github
