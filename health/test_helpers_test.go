package health

import (
	"encoding/json"
	"testing"

	"github.com/drblury/routeweaver/routeutil"
)

func decodeCheckPayload(t *testing.T, body []byte) checkPayload {
	t.Helper()

	var payload checkPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode check payload: %v (body: %s)", err, string(body))
	}
	return payload
}

func decodeErrorBody(t *testing.T, body []byte) routeutil.ErrorBody {
	t.Helper()

	var payload routeutil.ErrorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode error body: %v (body: %s)", err, string(body))
	}
	return payload
}
