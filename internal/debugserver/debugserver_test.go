package debugserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthzReturnsOK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReplayPath = "does-not-matter.bin"
	r := NewRouter(cfg)
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpointIsServed(t *testing.T) {
	r := NewRouter(DefaultConfig())
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestIsLoopback(t *testing.T) {
	if !isLoopback("127.0.0.1:6060") {
		t.Fatal("expected 127.0.0.1:6060 to be loopback")
	}
	if isLoopback("0.0.0.0:6060") {
		t.Fatal("expected 0.0.0.0:6060 to not be loopback")
	}
}
