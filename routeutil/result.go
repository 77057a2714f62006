package routeutil

import "maps"

// Stable error identifiers carried in the "error" field of normalized
// failure bodies.
const (
	CodeMissingStatus      = "MissingStatus"
	CodeInvalidStatusField = "InvalidStatusField"
	CodeRequestFailed      = "RequestFailed"
	CodeUnexpectedShape    = "UnexpectedResponseShape"
	CodeUnhandledError     = "UnhandledResponderError"
)

// Result is the normalized outcome a route handler produces instead of
// writing to the transport directly. Status distinguishes success from
// failure and must be set for a Result to resolve; a nil Status is
// reported to the client as a 500 rather than guessed at.
//
// Data carries the success payload or the failure cause. HTTP, when in
// the valid range 100-599, overrides the derived status code; any other
// value is ignored. Headers are applied to the response before the body
// is sent. Meta is free-form caller context and is never rendered.
type Result struct {
	Status  *bool             `json:"status,omitempty"`
	Data    any               `json:"data,omitempty"`
	HTTP    int               `json:"http,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Meta    any               `json:"meta,omitempty"`
}

// Success builds a Result reporting success with the given payload.
func Success(data any) Result {
	ok := true
	return Result{Status: &ok, Data: data}
}

// Failure builds a Result reporting failure. The data value is reduced
// to an error body when the response is committed: errors render their
// name and message, strings become the message of a generic failure,
// and maps contribute only their error and message keys.
func Failure(data any) Result {
	ok := false
	return Result{Status: &ok, Data: data}
}

// WithHTTP returns a copy of the Result with an explicit status code.
func (r Result) WithHTTP(code int) Result {
	r.HTTP = code
	return r
}

// WithHeader returns a copy of the Result with the header added. The
// header map is copied, so the original Result is left untouched.
func (r Result) WithHeader(name, value string) Result {
	headers := make(map[string]string, len(r.Headers)+1)
	maps.Copy(headers, r.Headers)
	headers[name] = value
	r.Headers = headers
	return r
}

// WithMeta returns a copy of the Result carrying caller context that is
// visible to log sinks but never rendered to the client.
func (r Result) WithMeta(meta any) Result {
	r.Meta = meta
	return r
}

// NamedError pairs a stable machine-readable name with an underlying
// error. A failure Result carrying one renders its name in the body's
// "error" field instead of the generic "Error".
type NamedError struct {
	Name string
	Err  error
}

// Error returns the underlying error message, or the name when no
// underlying error is set.
func (e *NamedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Name
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *NamedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorBody is the normalized JSON shape for failure responses that
// carry an error identifier and an optional human-readable message.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// faultBody is the error shape that additionally pins status to false,
// used where the response itself reports the success flag.
type faultBody struct {
	Status  bool   `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
