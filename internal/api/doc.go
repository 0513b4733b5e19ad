// Package api provides an HTTP client for the content API behind the admin views.
//
// # Overview
//
// The client covers the whole surface the list views need: fetching the
// canonical collection of a resource, its category options, single-field
// existence lookups for the uniqueness validator, and the three mutations.
//
// # Endpoints
//
// Every resource lives under the configured base URL (default
// http://localhost:5000/api):
//
//   - GET    /<resource>                 canonical list
//   - GET    /<resource>/categories      category options
//   - GET    /<resource>?email=<v>       existence lookup (also ?phone=)
//   - POST   /<resource>                 create (multipart)
//   - PATCH  /<resource>/<id>            update (multipart)
//   - DELETE /<resource>/<id>            remove
//
// Create and update bodies are multipart/form-data: one part per non-empty
// field, a repeated "categories[]" part per category id, and an optional file
// part. Every mutation carries a fresh UUID in the X-Mutation-ID header.
//
// # Error Handling
//
// Responses with status >= 400 become *StatusError, carrying the server's
// "message" when the body has one. Transport and decode failures are wrapped
// with fmt.Errorf so callers can still unwrap the cause.
//
// # Metrics
//
// WithMetrics attaches Prometheus collectors counting requests by method,
// resource and outcome (HTTP status, "ok" or "error").
package api
