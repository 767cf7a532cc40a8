package metrics

import "github.com/prometheus/client_golang/prometheus"

// DashboardMetrics exposes counters/histograms for fetch, export and link flows.
type DashboardMetrics struct {
	fetchTotal   *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	records      prometheus.Gauge
	exportsTotal *prometheus.CounterVec
	linksTotal   *prometheus.CounterVec
}

func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	m := &DashboardMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "submissions",
			Subsystem: "dashboard",
			Name:      "fetch_total",
			Help:      "Total fetches against the form backend",
		}, []string{"status"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "submissions",
			Subsystem: "dashboard",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of form backend fetches",
			Buckets:   prometheus.DefBuckets,
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "submissions",
			Subsystem: "dashboard",
			Name:      "records",
			Help:      "Records held in the current snapshot",
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "submissions",
			Subsystem: "dashboard",
			Name:      "exports_total",
			Help:      "Total CSV/PDF exports",
		}, []string{"format", "status"}),
		linksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "submissions",
			Subsystem: "dashboard",
			Name:      "whatsapp_links_total",
			Help:      "Messaging links requested, by outcome",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.fetchLatency, m.records, m.exportsTotal, m.linksTotal)
	return m
}

func (m *DashboardMetrics) ObserveFetch(status string, seconds float64, records int) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(status).Inc()
	m.fetchLatency.Observe(seconds)
	if status == "success" {
		m.records.Set(float64(records))
	}
}

// SetRecords reports the size of a snapshot restored outside a fetch.
func (m *DashboardMetrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.records.Set(float64(n))
}

func (m *DashboardMetrics) ObserveExport(format, status string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(format, status).Inc()
}

func (m *DashboardMetrics) ObserveLink(ok bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if ok {
		result = "ok"
	}
	m.linksTotal.WithLabelValues(result).Inc()
}
