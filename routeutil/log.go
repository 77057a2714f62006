package routeutil

import "log/slog"

// LogSink receives diagnostic payloads from the response helpers. The
// payload is a map describing the event, and tag identifies the
// logical route. Calls are fire-and-forget: return values are not
// consulted and a panicking sink never disturbs the response path.
type LogSink func(payload any, tag string)

func noopLogSink(any, string) {}

// catchPayload shapes a caught error for the log sink: the error
// message paired with a correlation trace id.
func catchPayload(err error) map[string]any {
	return map[string]any{
		"error":   err.Error(),
		"traceId": newTraceID(),
	}
}

// NewSlogSink adapts a slog.Logger to the LogSink contract. A nil
// logger falls back to slog.Default at call time.
func NewSlogSink(logger *slog.Logger) LogSink {
	return func(payload any, tag string) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Error("route event", "tag", tag, "payload", payload)
	}
}
