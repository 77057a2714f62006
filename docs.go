// Package routeweaver bundles a response-normalization layer for plain
// net/http services. The module stays intentionally small and encourages
// teams to pull in only the packages they need, keeping binaries lean and
// dependencies predictable.
//
// The routeutil package turns the results route handlers return into exactly
// one JSON response per request: explicit status flags, derived HTTP codes,
// uniform error envelopes, and logging hooks for everything that goes wrong
// on the way out. The health package layers liveness, readiness, status, and
// version endpoints on top of it, with adapters that turn database pings,
// redis pings, HTTP calls, or arbitrary closures into checks, while jsonutil
// provides thin sonic wrappers for high-throughput encoding and decoding.
//
// # Packages
//
//   - routeutil: result-to-response resolution, handler wrappers, and
//     responder closures with per-call logging hooks via functional options.
//   - health: batteries-included status, healthz, readyz, and version
//     endpoints plus check adapters for SQL, MongoDB, redis, and HTTP
//     dependencies.
//   - jsonutil: tiny helpers around sonic for performance-sensitive encoding
//     tasks.
//
// # Quick Start
//
//	utils := routeutil.New(routeutil.WithLogger(logger))
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/users/{id}", utils.WrapRoute(getUser))
//
//	endpoints := health.NewEndpoints(
//	    health.WithRouteUtils(utils),
//	    health.WithReadinessChecks(health.NewRedisPingCheck(redisClient)),
//	)
//	mux.HandleFunc("/healthz", endpoints.Liveness())
//	mux.HandleFunc("/readyz", endpoints.Readiness())
//
// Sharing the route utils keeps JSON payloads, error envelopes, and logging
// consistent across application routes and probes. Additional options tag
// routes for log correlation or swap in a custom log sink.
package routeweaver
