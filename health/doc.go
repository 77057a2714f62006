// Package health converts database, redis, HTTP, and custom ping
// functions into liveness/readiness checks and serves them through the
// routeutil response pipeline. See ExampleNewEndpoints and
// ExampleNewHTTPCheck for quick-start patterns.
package health
