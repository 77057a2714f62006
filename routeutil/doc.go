// Package routeutil normalizes route handler outcomes into HTTP
// responses. Handlers report a Result (or a decoded response map)
// instead of writing to the transport, and the resolver turns it into a
// status code, headers, and a JSON body with predictable error shapes,
// committing at most one response per request.
//
// WrapRoute adapts outcome-reporting handlers to http.HandlerFunc,
// Responder binds a reusable respond function to a single sink, and New
// bundles both behind shared logging and tagging configuration. See
// ExampleWrapRoute and ExampleResponder for quick-start patterns.
package routeutil
