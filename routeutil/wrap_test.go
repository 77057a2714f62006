package routeutil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drblury/routeweaver/routeutil"
)

func TestWrapRoute_resolvesHandlerResult(t *testing.T) {
	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
		return routeutil.Success(user{ID: 7, Name: "Ada"}), nil
	})

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Body.String(); got != "{\"id\":7,\"name\":\"Ada\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %s", got)
	}
}

func TestWrapRoute_mapResult(t *testing.T) {
	handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
		return map[string]any{"status": true, "data": map[string]any{"id": 7}}, nil
	})

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	body := decodeJSONBody(t, rr.Body.Bytes())
	if body["id"] != float64(7) {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestWrapRoute_handlerFailure(t *testing.T) {
	t.Run("returned error", func(t *testing.T) {
		var entries []logEntry
		sentinel := errors.New("boom")
		utils := routeutil.New(routeutil.WithLogSink(captureLog(&entries)))

		handler := utils.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return nil, sentinel
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/things", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}

		body := decodeJSONBody(t, rr.Body.Bytes())
		if body["error"] != "boom" {
			t.Fatalf("expected error boom, got %v", body["error"])
		}
		if _, found := body["status"]; found {
			t.Fatalf("expected no status field on the adapter error body, got %v", body)
		}
		if len(body) != 1 {
			t.Fatalf("expected only the error field, got %v", body)
		}

		if len(entries) != 1 {
			t.Fatalf("expected one log entry, got %d", len(entries))
		}
		if entries[0].tag != "GET /things/catch" {
			t.Fatalf("expected tag GET /things/catch, got %q", entries[0].tag)
		}
		payload, ok := entries[0].payload.(map[string]any)
		if !ok {
			t.Fatalf("expected map payload, got %T", entries[0].payload)
		}
		if payload["error"] != sentinel.Error() {
			t.Fatalf("expected the raised error message on the payload, got %v", payload["error"])
		}
		if traceID, ok := payload["traceId"].(string); !ok || traceID == "" {
			t.Fatal("expected a trace id on the payload")
		}
	})

	t.Run("panic", func(t *testing.T) {
		handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			panic(errors.New("cannot reach store"))
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/things", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}
		body := decodeJSONBody(t, rr.Body.Bytes())
		if body["error"] != "recovered from panic: cannot reach store" {
			t.Fatalf("unexpected error %v", body["error"])
		}
	})

	t.Run("nil handler", func(t *testing.T) {
		handler := routeutil.WrapRoute(nil)

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/things", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
		}
		body := decodeJSONBody(t, rr.Body.Bytes())
		if body["error"] != routeutil.ErrNilHandler.Error() {
			t.Fatalf("unexpected error %v", body["error"])
		}
	})
}

func TestWrapRoute_tags(t *testing.T) {
	t.Run("explicit tag with prefix", func(t *testing.T) {
		var entries []logEntry
		utils := routeutil.New(
			routeutil.WithTagPrefix("api/"),
			routeutil.WithLogSink(captureLog(&entries)),
		)

		handler := utils.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return nil, errors.New("x")
		}, routeutil.WithTag("list-things"))

		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things", nil))

		if entries[0].tag != "api/list-things/catch" {
			t.Fatalf("expected tag api/list-things/catch, got %q", entries[0].tag)
		}
	})

	t.Run("synthesized from the request", func(t *testing.T) {
		var entries []logEntry
		utils := routeutil.New(routeutil.WithLogSink(captureLog(&entries)))

		handler := utils.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return nil, errors.New("x")
		})

		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/orders", nil))

		if entries[0].tag != "POST /orders/catch" {
			t.Fatalf("expected tag POST /orders/catch, got %q", entries[0].tag)
		}
	})

	t.Run("question marks for a missing request", func(t *testing.T) {
		var entries []logEntry
		utils := routeutil.New(routeutil.WithLogSink(captureLog(&entries)))

		handler := utils.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return nil, errors.New("x")
		})

		handler(httptest.NewRecorder(), nil)

		if entries[0].tag != "? ?/catch" {
			t.Fatalf("expected tag ? ?/catch, got %q", entries[0].tag)
		}
	})
}

func TestWrapRoute_handlerWritesDirectly(t *testing.T) {
	t.Run("result after a direct write is a no-op", func(t *testing.T) {
		handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("streamed"))
			return nil, nil
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/stream", nil))

		if rr.Code != http.StatusAccepted {
			t.Fatalf("expected status %d, got %d", http.StatusAccepted, rr.Code)
		}
		if got := rr.Body.String(); got != "streamed" {
			t.Fatalf("expected the streamed body only, got %q", got)
		}
	})

	t.Run("error after a direct write is logged but not sent", func(t *testing.T) {
		var entries []logEntry
		utils := routeutil.New(routeutil.WithLogSink(captureLog(&entries)))

		handler := utils.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			w.WriteHeader(http.StatusAccepted)
			return nil, errors.New("too late")
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/stream", nil))

		if rr.Code != http.StatusAccepted {
			t.Fatalf("expected the handler status %d, got %d", http.StatusAccepted, rr.Code)
		}
		if rr.Body.Len() != 0 {
			t.Fatalf("expected no error body after commit, got %q", rr.Body.String())
		}
		if len(entries) != 1 {
			t.Fatalf("expected the error to be logged, got %d entries", len(entries))
		}
	})

	t.Run("headers set through the writer survive", func(t *testing.T) {
		handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
			w.Header().Set("X-From-Handler", "1")
			return routeutil.Success("ok"), nil
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/things", nil))

		if got := rr.Header().Get("X-From-Handler"); got != "1" {
			t.Fatalf("expected handler header to survive, got %q", got)
		}
	})
}

func TestWrapRoute_missingStatusFromHandler(t *testing.T) {
	handler := routeutil.WrapRoute(func(w http.ResponseWriter, r *http.Request) (any, error) {
		return nil, nil
	})

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/things", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	body := decodeJSONBody(t, rr.Body.Bytes())
	if body["error"] != routeutil.CodeMissingStatus {
		t.Fatalf("expected error %q, got %v", routeutil.CodeMissingStatus, body["error"])
	}
}
