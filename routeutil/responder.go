package routeutil

import (
	"errors"
	"fmt"
)

// WorkFunc computes one route outcome: a result for the resolver, or an
// error that is reported to the client as a 500.
type WorkFunc func() (any, error)

// RespondFunc runs a unit of route work and commits its outcome to the
// bound sink. It always reports true: by the time it returns, the
// response has been handled as far as the sink allows.
type RespondFunc func(work WorkFunc) bool

// ErrNilWork is reported when a responder is invoked without work.
var ErrNilWork = errors.New("work function is nil")

// Responder binds sink to a reusable respond function. Each call runs
// the work, resolves its result, and degrades to a best-effort 500 when
// the work fails or the result cannot be resolved. Failures and
// unresolvable results are reported to the log sink; without WithTag
// they are logged under the "responder" tag.
func (u *RouteUtils) Responder(sink Sink, opts ...CallOption) RespondFunc {
	cfg := u.newCallConfig(opts...)
	tag := cfg.tag
	if tag == "" {
		tag = "responder"
	}
	tag = u.prefixedTag(tag)

	return func(work WorkFunc) bool {
		result, err := runWork(work)
		if err != nil {
			cfg.emit(catchPayload(err), tag+"/catch")
			bestEffort500(sink, faultBody{Error: messageOrFallback(err)})
			return true
		}
		if u.Resolve(sink, result) {
			return true
		}
		cfg.emit(map[string]any{
			"message":  "Unexpected response shape",
			"response": result,
			"traceId":  newTraceID(),
		}, tag)
		bestEffort500(sink, faultBody{Error: CodeUnexpectedShape})
		return true
	}
}

func runWork(work WorkFunc) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, recoveredError(r)
		}
	}()
	if work == nil {
		return nil, ErrNilWork
	}
	return work()
}

func recoveredError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("recovered from panic: %w", err)
	}
	return fmt.Errorf("recovered from panic: %v", v)
}
