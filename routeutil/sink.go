package routeutil

import (
	"errors"
	"net/http"

	"github.com/drblury/routeweaver/jsonutil"
)

const jsonContentType = "application/json"

// ErrCommitted is returned by sink send methods once a response has
// already been written.
var ErrCommitted = errors.New("response already committed")

var errNoWriter = errors.New("response writer is nil")

// Sink is the minimal transport surface a response is committed to.
// SetStatus records the status code for the next send. SendJSON encodes
// the body as JSON and commits it; SendRaw commits the body verbatim,
// or just the status line when body is nil. Committed reports whether a
// response has already been written, by any path.
//
// Implementations may additionally implement HeaderSetter to receive
// response headers.
type Sink interface {
	SetStatus(code int)
	SendJSON(body any) error
	SendRaw(body []byte) error
	Committed() bool
}

// HeaderSetter is the optional header capability of a Sink. Sinks
// without it simply never receive header values.
type HeaderSetter interface {
	SetHeader(name, value string)
}

// capable reports whether the sink can be committed to at all. A nil
// interface or a nil *HTTPSink cannot.
func capable(s Sink) bool {
	if s == nil {
		return false
	}
	if hs, ok := s.(*HTTPSink); ok && hs == nil {
		return false
	}
	return true
}

// HTTPSink adapts an http.ResponseWriter to the Sink interface. It also
// implements http.ResponseWriter itself, so a handler that streams
// directly still flips the commit flag and keeps later sends from
// double-writing.
type HTTPSink struct {
	w      http.ResponseWriter
	status int
	wrote  bool
}

var (
	_ Sink                = (*HTTPSink)(nil)
	_ HeaderSetter        = (*HTTPSink)(nil)
	_ http.ResponseWriter = (*HTTPSink)(nil)
)

// NewHTTPSink wraps w. A nil writer yields a nil sink, which resolves
// as lacking commit capability.
func NewHTTPSink(w http.ResponseWriter) *HTTPSink {
	if w == nil {
		return nil
	}
	return &HTTPSink{w: w}
}

// SetStatus records the status code used when the body is committed.
// It has no effect once the response is written.
func (s *HTTPSink) SetStatus(code int) {
	if s == nil || s.wrote {
		return
	}
	s.status = code
}

// SetHeader sets a response header. Headers set after the response is
// committed are ignored by the underlying writer.
func (s *HTTPSink) SetHeader(name, value string) {
	if s == nil || s.w == nil {
		return
	}
	s.w.Header().Set(name, value)
}

// SendJSON encodes body as JSON and commits it with the recorded status
// code, defaulting to 200.
func (s *HTTPSink) SendJSON(body any) error {
	if s == nil || s.w == nil {
		return errNoWriter
	}
	if s.wrote {
		return ErrCommitted
	}
	data, err := jsonutil.Marshal(body)
	if err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	s.w.Header().Set("Content-Type", jsonContentType)
	s.WriteHeader(s.statusOrDefault())
	_, err = s.w.Write(data)
	return err
}

// SendRaw commits body verbatim with the recorded status code. A nil
// body commits just the status line, as a 204 requires.
func (s *HTTPSink) SendRaw(body []byte) error {
	if s == nil || s.w == nil {
		return errNoWriter
	}
	if s.wrote {
		return ErrCommitted
	}
	s.WriteHeader(s.statusOrDefault())
	if len(body) == 0 {
		return nil
	}
	_, err := s.w.Write(body)
	return err
}

// Committed reports whether a response has been written through the
// sink, including direct http.ResponseWriter use.
func (s *HTTPSink) Committed() bool {
	return s != nil && s.wrote
}

// Status returns the status code recorded or written so far, zero when
// none has been chosen yet.
func (s *HTTPSink) Status() int {
	if s == nil {
		return 0
	}
	return s.status
}

// Header exposes the underlying writer's header map.
func (s *HTTPSink) Header() http.Header {
	if s == nil || s.w == nil {
		return http.Header{}
	}
	return s.w.Header()
}

// Write commits the recorded status code on first use and streams b to
// the underlying writer.
func (s *HTTPSink) Write(b []byte) (int, error) {
	if s == nil || s.w == nil {
		return 0, errNoWriter
	}
	if !s.wrote {
		s.WriteHeader(s.statusOrDefault())
	}
	return s.w.Write(b)
}

// WriteHeader writes the status line once; repeated calls are ignored.
func (s *HTTPSink) WriteHeader(code int) {
	if s == nil || s.w == nil || s.wrote {
		return
	}
	s.status = code
	s.wrote = true
	s.w.WriteHeader(code)
}

func (s *HTTPSink) statusOrDefault() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}
