package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records catalog refresh outcomes and session-store activity.
type Metrics struct {
	refreshDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	storeOps        *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_refresh_duration_seconds",
		Help:    "Duration of catalog refreshes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Catalog refresh attempts by result.",
	}, []string{"result"})
	storeOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_store_ops_total",
		Help: "Cart and wishlist mutations by operation.",
	}, []string{"store", "op"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_store_persist_failures_total",
		Help: "Best-effort snapshot writes that failed.",
	}, []string{"store"})
	reg.MustRegister(refreshDuration, refreshTotal, storeOps, persistFailures)
	return &Metrics{
		refreshDuration: refreshDuration,
		refreshTotal:    refreshTotal,
		storeOps:        storeOps,
		persistFailures: persistFailures,
	}
}

// ObserveRefresh records one catalog refresh attempt.
func (m *Metrics) ObserveRefresh(result string, duration time.Duration) {
	if m == nil || m.refreshDuration == nil {
		return
	}
	label := normalizeLabel(result)
	m.refreshDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.refreshTotal.WithLabelValues(label).Inc()
}

// IncStoreOp counts a cart or wishlist mutation.
func (m *Metrics) IncStoreOp(store, op string) {
	if m == nil || m.storeOps == nil {
		return
	}
	m.storeOps.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncPersistFailure counts a failed snapshot write.
func (m *Metrics) IncPersistFailure(store string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
