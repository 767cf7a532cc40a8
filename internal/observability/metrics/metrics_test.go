package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDashboardMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDashboardMetrics(reg)
	m.ObserveFetch("success", 0.2, 4)
	m.ObserveFetch("timeout", 10, 0)
	m.ObserveExport("csv", "ok")
	m.ObserveLink(true)
	m.ObserveLink(false)

	if got := testutil.ToFloat64(m.fetchTotal.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 successful fetch, got %v", got)
	}
	if got := testutil.ToFloat64(m.records); got != 4 {
		t.Fatalf("expected records gauge 4, got %v", got)
	}
	if got := testutil.ToFloat64(m.linksTotal.WithLabelValues("invalid")); got != 1 {
		t.Fatalf("expected 1 invalid link, got %v", got)
	}
}

func TestDashboardMetricsNilSafe(t *testing.T) {
	var m *DashboardMetrics
	m.ObserveFetch("success", 0.1, 1)
	m.ObserveExport("pdf", "ok")
	m.ObserveLink(true)
	m.SetRecords(3)
}

func TestSetRecords(t *testing.T) {
	m := NewDashboardMetrics(prometheus.NewRegistry())
	m.SetRecords(7)
	if got := testutil.ToFloat64(m.records); got != 7 {
		t.Fatalf("expected records gauge 7, got %v", got)
	}
}
