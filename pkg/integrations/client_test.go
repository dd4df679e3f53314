package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	errs "github.com/matzehuels/aurclient/pkg/errors"
	"github.com/matzehuels/aurclient/pkg/observability"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"User-Agent": "test/1.0"}
	client := NewClient(nil, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() should default the http client")
	}
	if client.http.Timeout != httpTimeout {
		t.Errorf("default timeout = %v, want %v", client.http.Timeout, httpTimeout)
	}
	if client.headers["User-Agent"] != "test/1.0" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilHeaders(t *testing.T) {
	client := NewClient(http.DefaultClient, nil)

	if client.http != http.DefaultClient {
		t.Error("NewClient() should keep the supplied http client")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var override, def string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		override = r.Header.Get("X-Override")
		def = r.Header.Get("X-Default")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.Client(), map[string]string{"X-Override": "default", "X-Default": "kept"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if override != "overridden" {
		t.Errorf("header = %q, want %q", override, "overridden")
	}
	if def != "kept" {
		t.Errorf("default header = %q, want %q", def, "kept")
	}
}

func TestClientGetErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		code    errs.Code
		status  int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			code:   errs.ErrCodeNetwork,
			status: http.StatusServiceUnavailable,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			code:   errs.ErrCodeNetwork,
			status: http.StatusNotFound,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>maintenance</html>"))
			},
			code: errs.ErrCodeDecode,
		},
		{
			name: "trailing data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"version":5} <html>garbage`))
			},
			code: errs.ErrCodeDecode,
		},
		{
			name: "server error with invalid body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte("slow down"))
			},
			code:   errs.ErrCodeNetwork,
			status: http.StatusTooManyRequests,
		},
		{
			name:    "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			code:    errs.ErrCodeDecode,
		},
		{
			name: "connection reset",
			handler: func(w http.ResponseWriter, r *http.Request) {
				conn, _, err := w.(http.Hijacker).Hijack()
				if err != nil {
					t.Errorf("hijack: %v", err)
					return
				}
				conn.Close()
			},
			code: errs.ErrCodeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.Client(), nil)

			var v map[string]any
			err := client.Get(context.Background(), server.URL, &v)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.code, err)
			}
			if tt.status != 0 {
				var se *errs.StatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected StatusError in chain: %v", err)
				}
				if se.StatusCode != tt.status {
					t.Errorf("status = %d, want %d", se.StatusCode, tt.status)
				}
			}
		})
	}
}

func TestClientGetErrorStatusWithJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limit reached"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var v map[string]any
	if err := client.Get(context.Background(), server.URL, &v); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if v["error"] != "Rate limit reached" {
		t.Errorf("body not decoded: %v", v)
	}
}

func TestClientGetInvalidURL(t *testing.T) {
	client := NewClient(nil, nil)

	var v map[string]any
	err := client.Get(context.Background(), "::not a url", &v)
	if !errs.Is(err, errs.ErrCodeInvalidURL) {
		t.Errorf("expected INVALID_URL, got %v", err)
	}
}

func TestClientGetCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.Client(), nil)

	var v map[string]any
	err := client.Get(ctx, server.URL, &v)
	if !errs.Is(err, errs.ErrCodeNetwork) {
		t.Errorf("expected NETWORK_ERROR, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClientHooks(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetHTTPHooks(rec)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fail") != "" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	var v map[string]any
	if err := client.Get(context.Background(), server.URL+"/rpc", &v); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	_ = client.Get(context.Background(), server.URL+"/rpc?fail=1", &v)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(rec.requests))
	}
	if rec.requests[0] == rec.requests[1] {
		t.Error("request ids should be unique")
	}
	if len(rec.responses) != 2 {
		t.Errorf("responses = %d, want 2", len(rec.responses))
	}
	if len(rec.errors) != 1 || rec.errors[0] != rec.requests[1] {
		t.Errorf("errors = %v, want exactly the second request id", rec.errors)
	}
	if rec.paths[0] != "/rpc" {
		t.Errorf("path = %q, want /rpc", rec.paths[0])
	}
}

type recordingHooks struct {
	mu        sync.Mutex
	requests  []string
	responses []string
	errors    []string
	paths     []string
}

func (h *recordingHooks) OnRequest(_ context.Context, id, _, _, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, id)
	h.paths = append(h.paths, path)
}

func (h *recordingHooks) OnResponse(_ context.Context, id, _, _, _ string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, id)
}

func (h *recordingHooks) OnError(_ context.Context, id, _, _, _ string, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, id)
}
