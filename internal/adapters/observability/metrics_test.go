package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_registry/internal/adapters/observability"
)

func scrape(t *testing.T) string {
	t.Helper()
	reg := observability.InitRegistry()
	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	return string(body)
}

func TestMetricsRegistryAndHandler(t *testing.T) {
	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)

	out := scrape(t)
	if !strings.Contains(out, "hotel_http_requests_total") {
		t.Fatalf("expected hotel_http_requests_total in output")
	}
}

func TestRegistryOperationsCounter(t *testing.T) {
	observability.ObserveRegistry("rooms", "delete", "illegal")

	out := scrape(t)
	want := `hotel_registry_operations_total{op="delete",outcome="illegal",registry="rooms"}`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %s in output:\n%s", want, out)
	}
}
