package health

import (
	"fmt"
	"net/http"
)

// HTTPStatusExpectation reports whether an HTTP status code counts as
// healthy.
type HTTPStatusExpectation func(status int) bool

// HTTPRequestMutator tweaks the outbound request before dispatch, for
// example to attach auth headers.
type HTTPRequestMutator func(req *http.Request) error

// HTTPResponseValidator inspects the received response and can veto
// the check.
type HTTPResponseValidator func(resp *http.Response) error

// HTTPCheckOption configures the behaviour of NewHTTPCheck.
type HTTPCheckOption func(*httpCheckConfig)

type httpCheckConfig struct {
	client             HTTPDoer
	expect             HTTPStatusExpectation
	requestMutators    []HTTPRequestMutator
	responseValidators []HTTPResponseValidator
	drainResponse      bool
}

func buildHTTPCheckConfig(client HTTPDoer, opts ...HTTPCheckOption) *httpCheckConfig {
	cfg := &httpCheckConfig{
		client:        client,
		expect:        defaultHTTPStatusExpectation,
		drainResponse: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	if cfg.expect == nil {
		cfg.expect = defaultHTTPStatusExpectation
	}
	return cfg
}

func (c *httpCheckConfig) applyMutators(req *http.Request) error {
	for _, mutate := range c.requestMutators {
		if mutate == nil {
			continue
		}
		if err := mutate(req); err != nil {
			return err
		}
	}
	return nil
}

func (c *httpCheckConfig) validateResponse(resp *http.Response) error {
	if c.expect != nil && !c.expect(resp.StatusCode) {
		return fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	for _, validate := range c.responseValidators {
		if validate == nil {
			continue
		}
		if err := validate(resp); err != nil {
			return err
		}
	}
	return nil
}

// WithHTTPClient overrides the HTTP client used for the check.
func WithHTTPClient(client HTTPDoer) HTTPCheckOption {
	return func(cfg *httpCheckConfig) {
		cfg.client = client
	}
}

// WithHTTPStatusExpectation installs a custom status validation
// function.
func WithHTTPStatusExpectation(expect HTTPStatusExpectation) HTTPCheckOption {
	return func(cfg *httpCheckConfig) {
		cfg.expect = expect
	}
}

// WithHTTPAllowedStatuses restricts the check to succeed only for the
// provided status codes.
func WithHTTPAllowedStatuses(statuses ...int) HTTPCheckOption {
	allowed := make(map[int]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}
	return func(cfg *httpCheckConfig) {
		cfg.expect = func(status int) bool {
			if len(allowed) == 0 {
				return defaultHTTPStatusExpectation(status)
			}
			_, ok := allowed[status]
			return ok
		}
	}
}

// WithHTTPRequestMutator registers a mutator that runs before the
// request is dispatched. Mutators run in registration order.
func WithHTTPRequestMutator(mutator HTTPRequestMutator) HTTPCheckOption {
	return func(cfg *httpCheckConfig) {
		cfg.requestMutators = append(cfg.requestMutators, mutator)
	}
}

// WithHTTPResponseValidator registers a validator that runs after a
// response is received. Validators run in registration order.
func WithHTTPResponseValidator(validator HTTPResponseValidator) HTTPCheckOption {
	return func(cfg *httpCheckConfig) {
		cfg.responseValidators = append(cfg.responseValidators, validator)
	}
}

// WithHTTPDrainResponseBody toggles draining of the response body
// after validation. Draining is on by default so connections can be
// reused.
func WithHTTPDrainResponseBody(enabled bool) HTTPCheckOption {
	return func(cfg *httpCheckConfig) {
		cfg.drainResponse = enabled
	}
}
