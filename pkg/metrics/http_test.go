package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/equipment", "200", 10*time.Millisecond)
	m.ObserveRequest("GET", "/api/equipment", "200", 20*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/equipment", "200"))
	if got != 2 {
		t.Fatalf("expected counter 2, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", "200", time.Millisecond)

	var zero *HTTPMetrics
	zero.ObserveRequest("GET", "/", "200", time.Millisecond)
}
