package routeutil

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
)

type resultShape int

const (
	shapeMissing resultShape = iota
	shapeInvalid
	shapeSuccess
	shapeFailure
)

// resolved is the transport-neutral reading of a handler outcome.
type resolved struct {
	shape   resultShape
	data    any
	code    int // explicit status override, 0 when absent
	headers map[string]string
}

// Resolve commits result to sink as a normalized HTTP response. It
// accepts a Result, a *Result, or a map[string]any carrying the same
// keys, as produced by decoding a JSON response object.
//
// A success commits the data as JSON with status 200, or 204 when the
// data is nil or an empty string; a failure commits a reduced error
// body with status 400. An in-range Result.HTTP overrides either code.
// Outcomes that cannot be classified are reported to the client as 500
// bodies rather than guessed at.
//
// The return value tells the caller whether a response was committed,
// or already had been: false only when sink is nil. Once a capable sink
// is in hand Resolve does not panic; a failure while sending degrades
// to a best-effort 500 and still reports true.
func (u *RouteUtils) Resolve(sink Sink, result any) (handled bool) {
	if !capable(sink) {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			bestEffort500(sink, faultBody{Error: CodeUnhandledError, Message: recoveredMessage(r)})
			handled = true
		}
	}()
	if sink.Committed() {
		return true
	}

	res := normalize(result)
	if res.shape == shapeMissing {
		commit(sink, http.StatusInternalServerError, ErrorBody{
			Error:   CodeMissingStatus,
			Message: "Missing status on response object",
		})
		return true
	}

	applyHeaders(sink, res.headers)

	switch res.shape {
	case shapeInvalid:
		commit(sink, http.StatusInternalServerError, faultBody{
			Error:   CodeInvalidStatusField,
			Message: "status must be boolean",
		})
	case shapeSuccess:
		code := res.statusCode()
		if code == http.StatusNoContent {
			commitEmpty(sink, code)
		} else {
			commit(sink, code, res.data)
		}
	case shapeFailure:
		commit(sink, res.statusCode(), errorBodyFor(res.data))
	}
	return true
}

func commit(sink Sink, code int, body any) {
	sink.SetStatus(code)
	if err := sink.SendJSON(body); err != nil {
		bestEffort500(sink, faultBody{Error: CodeUnhandledError, Message: err.Error()})
	}
}

func commitEmpty(sink Sink, code int) {
	sink.SetStatus(code)
	if err := sink.SendRaw(nil); err != nil {
		bestEffort500(sink, faultBody{Error: CodeUnhandledError, Message: err.Error()})
	}
}

// bestEffort500 makes the final attempt at reporting an internal
// failure. It never panics and never propagates errors: if even this
// send fails, the response is abandoned to the transport.
func bestEffort500(sink Sink, body any) {
	defer func() {
		_ = recover()
	}()
	if !capable(sink) || sink.Committed() {
		return
	}
	sink.SetStatus(http.StatusInternalServerError)
	_ = sink.SendJSON(body)
}

func normalize(result any) resolved {
	switch v := result.(type) {
	case Result:
		return normalizeResult(v)
	case *Result:
		if v == nil {
			return resolved{shape: shapeMissing}
		}
		return normalizeResult(*v)
	case map[string]any:
		return normalizeMap(v)
	default:
		return resolved{shape: shapeMissing}
	}
}

func normalizeResult(r Result) resolved {
	res := resolved{
		data:    r.Data,
		code:    statusOverride(r.HTTP),
		headers: r.Headers,
	}
	switch {
	case r.Status == nil:
		res.shape = shapeMissing
	case *r.Status:
		res.shape = shapeSuccess
	default:
		res.shape = shapeFailure
	}
	return res
}

func normalizeMap(m map[string]any) resolved {
	res := resolved{data: m["data"], headers: headersFrom(m["headers"])}
	if code, ok := intFrom(m["http"]); ok {
		res.code = statusOverride(code)
	}
	status, present := m["status"]
	flag, isBool := status.(bool)
	switch {
	case !present:
		res.shape = shapeMissing
	case !isBool:
		res.shape = shapeInvalid
	case flag:
		res.shape = shapeSuccess
	default:
		res.shape = shapeFailure
	}
	return res
}

// statusOverride keeps explicit codes only when they are plausible HTTP
// statuses; anything outside 100-599 falls through to derived codes.
func statusOverride(code int) int {
	if code < 100 || code > 599 {
		return 0
	}
	return code
}

func intFrom(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		// Decoded JSON numbers arrive as float64; fractional values do
		// not name a status code.
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func headersFrom(v any) map[string]string {
	switch h := v.(type) {
	case map[string]string:
		return h
	case map[string]any:
		out := make(map[string]string, len(h))
		for name, value := range h {
			if s, ok := value.(string); ok {
				out[name] = s
			}
		}
		return out
	}
	return nil
}

func (r resolved) statusCode() int {
	if r.code != 0 {
		return r.code
	}
	switch r.shape {
	case shapeSuccess:
		if r.data == nil || r.data == "" {
			return http.StatusNoContent
		}
		return http.StatusOK
	case shapeFailure:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// applyHeaders sets each header on sinks that accept them. A panic from
// one entry is swallowed so the remaining headers and the body still go
// out.
func applyHeaders(sink Sink, headers map[string]string) {
	if len(headers) == 0 {
		return
	}
	hs, ok := sink.(HeaderSetter)
	if !ok {
		return
	}
	for name, value := range headers {
		setHeader(hs, name, value)
	}
}

func setHeader(hs HeaderSetter, name, value string) {
	defer func() {
		_ = recover()
	}()
	hs.SetHeader(name, value)
}

// errorBodyFor reduces a failure payload to the normalized error body.
// Errors keep their name and message, strings become the message of a
// generic failure, and maps contribute only their error and message
// keys; everything else collapses to the generic failure body.
func errorBodyFor(data any) any {
	switch d := data.(type) {
	case nil:
		return ErrorBody{Error: CodeRequestFailed, Message: "Request failed"}
	case error:
		return ErrorBody{Error: errorName(d), Message: d.Error()}
	case string:
		return ErrorBody{Error: CodeRequestFailed, Message: d}
	case ErrorBody:
		return d
	case *ErrorBody:
		if d == nil {
			return ErrorBody{Error: CodeRequestFailed, Message: "Request failed"}
		}
		return *d
	case map[string]any:
		return errorMapSubset(d)
	case map[string]string:
		m := make(map[string]any, len(d))
		for k, v := range d {
			m[k] = v
		}
		return errorMapSubset(m)
	}
	return ErrorBody{Error: CodeRequestFailed, Message: "Request failed"}
}

func errorMapSubset(m map[string]any) map[string]any {
	body := make(map[string]any, 2)
	if v, ok := m["error"]; ok {
		body["error"] = v
	}
	if v, ok := m["message"]; ok {
		body["message"] = v
	}
	return body
}

// errorName extracts the stable name of a NamedError anywhere in the
// chain, defaulting to the generic "Error".
func errorName(err error) string {
	var named *NamedError
	if errors.As(err, &named) && named.Name != "" {
		return named.Name
	}
	return "Error"
}

func recoveredMessage(v any) string {
	switch x := v.(type) {
	case error:
		return x.Error()
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func messageOrFallback(err error) string {
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			return msg
		}
	}
	return "Unexpected error"
}
