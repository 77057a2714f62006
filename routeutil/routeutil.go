package routeutil

import (
	"log/slog"
	"net/http"
	"sync"
)

// RouteUtils bundles the response helpers behind shared configuration:
// a default log sink and a prefix applied to route tags. The zero value
// and a nil pointer both behave like New() with no options.
type RouteUtils struct {
	log       LogSink
	tagPrefix string
}

// Option follows the functional options pattern used by New to
// configure a RouteUtils instance.
type Option func(*RouteUtils)

// New constructs a RouteUtils. Without options, responses resolve
// silently: the default log sink discards every payload.
func New(opts ...Option) *RouteUtils {
	u := &RouteUtils{log: noopLogSink}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}
	return u
}

// WithLogSink installs the log sink used by wrapped routes and
// responders built from this instance.
func WithLogSink(log LogSink) Option {
	return func(u *RouteUtils) {
		if log != nil {
			u.log = log
		}
	}
}

// WithLogger is shorthand for WithLogSink(NewSlogSink(logger)).
func WithLogger(logger *slog.Logger) Option {
	return func(u *RouteUtils) {
		u.log = NewSlogSink(logger)
	}
}

// WithTagPrefix prepends prefix to every route tag, explicit or
// synthesized.
func WithTagPrefix(prefix string) Option {
	return func(u *RouteUtils) {
		u.tagPrefix = prefix
	}
}

// CallOption configures a single wrapped route or responder.
type CallOption func(*callConfig)

// WithTag pins the route tag instead of synthesizing one.
func WithTag(tag string) CallOption {
	return func(c *callConfig) {
		c.tag = tag
	}
}

// WithCallLogSink overrides the instance log sink for one route or
// responder.
func WithCallLogSink(log LogSink) CallOption {
	return func(c *callConfig) {
		if log != nil {
			c.log = log
		}
	}
}

type callConfig struct {
	tag string
	log LogSink
}

func (u *RouteUtils) newCallConfig(opts ...CallOption) callConfig {
	cfg := callConfig{log: u.logSink()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// emit delivers a payload to the log sink without letting a panicking
// sink disturb the response path.
func (c callConfig) emit(payload any, tag string) {
	defer func() {
		_ = recover()
	}()
	c.log(payload, tag)
}

func (u *RouteUtils) logSink() LogSink {
	if u == nil || u.log == nil {
		return noopLogSink
	}
	return u.log
}

func (u *RouteUtils) prefixedTag(tag string) string {
	if u == nil {
		return tag
	}
	return u.tagPrefix + tag
}

// routeTag picks the explicit tag when set, otherwise synthesizes one
// from the request.
func (u *RouteUtils) routeTag(explicit string, r *http.Request) string {
	tag := explicit
	if tag == "" {
		tag = synthesizeTag(r)
	}
	return u.prefixedTag(tag)
}

// synthesizeTag renders "{method} {path}" with "?" standing in for
// whatever the request cannot provide.
func synthesizeTag(r *http.Request) string {
	method, path := "?", "?"
	if r != nil {
		if r.Method != "" {
			method = r.Method
		}
		if r.URL != nil && r.URL.Path != "" {
			path = r.URL.Path
		}
	}
	return method + " " + path
}

var defaultUtils = sync.OnceValue(func() *RouteUtils {
	return New()
})

// Resolve commits result to sink using the shared silent instance. See
// RouteUtils.Resolve.
func Resolve(sink Sink, result any) bool {
	return defaultUtils().Resolve(sink, result)
}

// WrapRoute adapts handler using the shared silent instance. See
// RouteUtils.WrapRoute.
func WrapRoute(handler RouteHandler, opts ...CallOption) http.HandlerFunc {
	return defaultUtils().WrapRoute(handler, opts...)
}

// Responder binds sink to a respond function using the shared silent
// instance. See RouteUtils.Responder.
func Responder(sink Sink, opts ...CallOption) RespondFunc {
	return defaultUtils().Responder(sink, opts...)
}
