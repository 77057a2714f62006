package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPDoer captures the subset of *http.Client the HTTP check needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPCheck performs an HTTP request against target and validates
// the response. The check passes when the status code is in the 2xx
// range unless an option installs a different expectation; a nil
// client falls back to http.DefaultClient.
func NewHTTPCheck(name, method, target string, client HTTPDoer, opts ...HTTPCheckOption) Func {
	cfg := buildHTTPCheckConfig(client, opts...)

	return func(ctx context.Context) error {
		endpoint := strings.TrimSpace(target)
		if endpoint == "" {
			return fmt.Errorf("%s check: target URL is required", name)
		}

		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb == "" {
			verb = http.MethodGet
		}

		req, err := http.NewRequestWithContext(contextOrBackground(ctx), verb, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%s check: failed to build request: %w", name, err)
		}

		if err := cfg.applyMutators(req); err != nil {
			return fmt.Errorf("%s check: request mutation failed: %w", name, err)
		}

		resp, err := cfg.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s check request failed: %w", name, err)
		}
		defer resp.Body.Close()

		if err := cfg.validateResponse(resp); err != nil {
			return fmt.Errorf("%s check: %w", name, err)
		}

		if cfg.drainResponse {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				return fmt.Errorf("%s check: failed to drain response body: %w", name, err)
			}
		}
		return nil
	}
}

func defaultHTTPStatusExpectation(status int) bool {
	return status >= 200 && status < 300
}
