package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/products", 200, 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/products", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/cart/items", 400, 5*time.Millisecond)

	if got := testutil.CollectAndCount(reg, "http_requests_total"); got != 2 {
		t.Fatalf("expected 2 request series, got %d", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", 500, time.Millisecond)
}
