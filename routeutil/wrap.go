package routeutil

import (
	"errors"
	"net/http"
)

// RouteHandler is an HTTP handler that reports its outcome instead of
// writing it. The ResponseWriter it receives is the sink the outcome is
// committed to, so streaming to it directly is still safe: the sink
// records the write and the resolver backs off.
type RouteHandler func(w http.ResponseWriter, r *http.Request) (any, error)

// ErrNilHandler is reported when a wrapped route has no handler.
var ErrNilHandler = errors.New("route handler is nil")

// WrapRoute adapts handler into an http.HandlerFunc. The handler's
// result is resolved into the response; a returned error or panic is
// logged under the route tag suffixed with "/catch" and reported to the
// client as a 500, unless the handler already committed a response.
//
// Without WithTag the route tag is synthesized from the request as
// "{method} {path}".
func (u *RouteUtils) WrapRoute(handler RouteHandler, opts ...CallOption) http.HandlerFunc {
	cfg := u.newCallConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		sink := NewHTTPSink(w)
		tag := u.routeTag(cfg.tag, r)

		result, err := runHandler(handler, sink, r)
		if err != nil {
			cfg.emit(catchPayload(err), tag+"/catch")
			bestEffort500(sink, ErrorBody{Error: messageOrFallback(err)})
			return
		}
		if u.Resolve(sink, result) {
			return
		}
		cfg.emit(map[string]any{
			"message":  "Unexpected response shape",
			"response": result,
			"route":    tag,
			"traceId":  newTraceID(),
		}, tag)
		bestEffort500(sink, ErrorBody{Error: CodeUnexpectedShape})
	}
}

func runHandler(handler RouteHandler, w http.ResponseWriter, r *http.Request) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, recoveredError(rec)
		}
	}()
	if handler == nil {
		return nil, ErrNilHandler
	}
	return handler(w, r)
}
