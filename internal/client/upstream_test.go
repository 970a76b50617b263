package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hello-api/internal/config"
	"hello-api/internal/metrics"
)

func testConfig(timeoutSeconds int) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  timeoutSeconds,
			IdleConnections: 10,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpstreamClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want %q", got, "application/json")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := NewUpstreamClient(testConfig(10), discardLogger(), nil)

	header := http.Header{"Accept": {"application/json"}}
	resp, err := c.Get(context.Background(), srv.URL+"/posts/1", header)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(body) != `{"id":1}` {
		t.Errorf("body = %q, want %q", string(body), `{"id":1}`)
	}
}

func TestUpstreamClient_Get_NonOKIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewUpstreamClient(testConfig(10), discardLogger(), nil)

	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestUpstreamClient_Get_Error(t *testing.T) {
	c := NewUpstreamClient(testConfig(1), discardLogger(), nil)

	_, err := c.Get(context.Background(), "http://127.0.0.1:1/nonexistent", nil)
	if err == nil {
		t.Fatal("Get() expected error for unreachable host, got nil")
	}
}

func TestUpstreamClient_Get_InvalidURL(t *testing.T) {
	c := NewUpstreamClient(testConfig(1), discardLogger(), nil)

	_, err := c.Get(context.Background(), "http://[::1", nil)
	if err == nil {
		t.Fatal("Get() expected error for malformed URL, got nil")
	}
}

func TestUpstreamClient_Get_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Simulate a slow upstream; the request should be canceled before this completes.
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewUpstreamClient(testConfig(30), discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, srv.URL+"/slow", nil)
	if err == nil {
		t.Fatal("Get() expected error for canceled context, got nil")
	}
}

func TestUpstreamClient_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := metrics.New()
	c := NewUpstreamClient(testConfig(10), discardLogger(), m)

	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	_ = resp.Body.Close()

	if _, err := c.Get(context.Background(), "http://127.0.0.1:1/", nil); err == nil {
		t.Fatal("Get() expected error for unreachable host, got nil")
	}

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var gotStatus, gotErrors bool
	for _, f := range families {
		switch f.GetName() {
		case "hello_api_upstream_responses_total":
			for _, metric := range f.GetMetric() {
				for _, lp := range metric.GetLabel() {
					if lp.GetName() == "status_code" && lp.GetValue() == "500" {
						gotStatus = true
					}
				}
			}
		case "hello_api_upstream_errors_total":
			for _, metric := range f.GetMetric() {
				if metric.GetCounter().GetValue() == 1 {
					gotErrors = true
				}
			}
		}
	}
	if !gotStatus {
		t.Error("expected hello_api_upstream_responses_total with status_code=500")
	}
	if !gotErrors {
		t.Error("expected hello_api_upstream_errors_total = 1")
	}
}
