package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/drblury/routeweaver/routeutil"
)

const defaultCheckTimeout = 2 * time.Second

// checkPayload is the body reported by the probe endpoints.
type checkPayload struct {
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

// VersionProvider returns the payload exposed by the version endpoint.
type VersionProvider func() any

// Endpoints builds the health and version routes of a service. The
// handlers go through the routeutil response pipeline, so probe
// failures are rendered and logged the same way as any other route.
type Endpoints struct {
	utils           *routeutil.RouteUtils
	checkTimeout    time.Duration
	livenessChecks  []Func
	readinessChecks []Func
	version         VersionProvider
}

// EndpointsOption configures NewEndpoints.
type EndpointsOption func(*Endpoints)

// NewEndpoints constructs the health endpoints. Without options every
// probe reports healthy and the version endpoint serves an empty
// object.
func NewEndpoints(opts ...EndpointsOption) *Endpoints {
	e := &Endpoints{
		utils:        routeutil.New(),
		checkTimeout: defaultCheckTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithRouteUtils shares a configured response helper so probe failures
// land in the same log sink as the rest of the API.
func WithRouteUtils(utils *routeutil.RouteUtils) EndpointsOption {
	return func(e *Endpoints) {
		if utils != nil {
			e.utils = utils
		}
	}
}

// WithCheckTimeout overrides the per-request deadline shared by all
// checks of a probe.
func WithCheckTimeout(timeout time.Duration) EndpointsOption {
	return func(e *Endpoints) {
		if timeout > 0 {
			e.checkTimeout = timeout
		}
	}
}

// WithLivenessChecks installs the checks behind the liveness probe.
func WithLivenessChecks(checks ...Func) EndpointsOption {
	return func(e *Endpoints) {
		e.livenessChecks = filterChecks(checks)
	}
}

// WithReadinessChecks installs the checks behind the readiness probe.
func WithReadinessChecks(checks ...Func) EndpointsOption {
	return func(e *Endpoints) {
		e.readinessChecks = filterChecks(checks)
	}
}

// WithVersionProvider installs the payload source for the version
// endpoint.
func WithVersionProvider(provider VersionProvider) EndpointsOption {
	return func(e *Endpoints) {
		if provider != nil {
			e.version = provider
		}
	}
}

// Status reports a static healthy payload for lightweight diagnostics.
func (e *Endpoints) Status() http.HandlerFunc {
	return e.utils.WrapRoute(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
		return noStore(routeutil.Success(checkPayload{Status: "HEALTHY"})), nil
	}, routeutil.WithTag("status"))
}

// Liveness runs the liveness checks and reports 503 with the failure
// message when any of them fails.
func (e *Endpoints) Liveness() http.HandlerFunc {
	return e.utils.WrapRoute(func(_ http.ResponseWriter, r *http.Request) (any, error) {
		if err := e.runChecks(requestContext(r), e.livenessChecks); err != nil {
			return unavailable(err), nil
		}
		return noStore(routeutil.Success(checkPayload{Status: "ok"})), nil
	}, routeutil.WithTag("healthz"))
}

// Readiness runs the readiness checks and reports 503 with the failure
// message when any of them fails.
func (e *Endpoints) Readiness() http.HandlerFunc {
	return e.utils.WrapRoute(func(_ http.ResponseWriter, r *http.Request) (any, error) {
		if err := e.runChecks(requestContext(r), e.readinessChecks); err != nil {
			return unavailable(err), nil
		}
		return noStore(routeutil.Success(checkPayload{Status: "ready"})), nil
	}, routeutil.WithTag("readyz"))
}

// Version serves the configured version payload, or an empty object
// when no provider is installed.
func (e *Endpoints) Version() http.HandlerFunc {
	return e.utils.WrapRoute(func(_ http.ResponseWriter, _ *http.Request) (any, error) {
		var payload any
		if e.version != nil {
			payload = e.version()
		}
		if payload == nil {
			payload = map[string]string{}
		}
		return routeutil.Success(payload), nil
	}, routeutil.WithTag("version"))
}

// runChecks executes the checks in order under a shared timeout and
// stops at the first failure.
func (e *Endpoints) runChecks(ctx context.Context, checks []Func) error {
	if len(checks) == 0 {
		return nil
	}

	timeout := e.checkTimeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for idx, check := range checks {
		if check == nil {
			continue
		}
		if err := check(checkCtx); err != nil {
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				return fmt.Errorf("check %d timed out after %s", idx+1, timeout)
			case errors.Is(err, context.Canceled):
				return fmt.Errorf("check %d was cancelled", idx+1)
			default:
				return fmt.Errorf("check %d failed: %w", idx+1, err)
			}
		}
	}
	return nil
}

// unavailable shapes a failed probe as a 503 with the standard error
// body.
func unavailable(err error) routeutil.Result {
	failure := routeutil.Failure(&routeutil.NamedError{Name: "ProbeFailed", Err: err})
	return noStore(failure.WithHTTP(http.StatusServiceUnavailable))
}

// noStore keeps intermediaries from caching probe responses.
func noStore(res routeutil.Result) routeutil.Result {
	return res.WithHeader("Cache-Control", "no-store")
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

func filterChecks(checks []Func) []Func {
	if len(checks) == 0 {
		return nil
	}

	filtered := make([]Func, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}

	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
