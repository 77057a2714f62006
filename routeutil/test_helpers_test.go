package routeutil_test

import (
	"encoding/json"
	"testing"
)

// stubSink satisfies Sink without the header capability and records
// every interaction so tests can assert on commit attempts.
type stubSink struct {
	statuses    []int
	bodies      []any
	raw         [][]byte
	committed   bool
	sendErr     error
	panicOnSend bool
}

func (s *stubSink) SetStatus(code int) {
	s.statuses = append(s.statuses, code)
}

func (s *stubSink) SendJSON(body any) error {
	s.bodies = append(s.bodies, body)
	if s.panicOnSend {
		panic("sink exploded")
	}
	if s.sendErr != nil {
		return s.sendErr
	}
	s.committed = true
	return nil
}

func (s *stubSink) SendRaw(body []byte) error {
	s.raw = append(s.raw, body)
	if s.sendErr != nil {
		return s.sendErr
	}
	s.committed = true
	return nil
}

func (s *stubSink) Committed() bool {
	return s.committed
}

// headerSink adds the optional header capability, with a way to make a
// single header blow up.
type headerSink struct {
	stubSink
	headers map[string]string
	panicOn string
}

func (s *headerSink) SetHeader(name, value string) {
	if name != "" && name == s.panicOn {
		panic("header rejected")
	}
	if s.headers == nil {
		s.headers = make(map[string]string)
	}
	s.headers[name] = value
}

func decodeJSONBody(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to decode body: %v (body: %s)", err, string(body))
	}
	return decoded
}

// roundTrip renders a recorded body value the way a sink would and
// decodes it back for assertions.
func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode recorded body: %v", err)
	}
	return decodeJSONBody(t, data)
}
