package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

type Metrics struct {
	CatalogFetches *prometheus.CounterVec
	CartOps        *prometheus.CounterVec
	EventsFailed   prometheus.Counter
}

// New registers the storefront collectors on reg. storeState reports the
// cart store state as a number (0 uninitialized .. 3 closed).
func New(reg prometheus.Registerer, storeState func() float64) *Metrics {
	m := &Metrics{
		CatalogFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by outcome.",
		}, []string{"outcome"}),
		CartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart store operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_events_failed_total",
			Help:      "Cart events that could not be published.",
		}),
	}

	reg.MustRegister(m.CatalogFetches, m.CartOps, m.EventsFailed)
	if storeState != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_store_state",
			Help:      "Cart store state: 0 uninitialized, 1 initializing, 2 ready, 3 closed.",
		}, storeState))
	}
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) ObserveFetch(err error) {
	if m == nil {
		return
	}
	m.CatalogFetches.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) ObserveCartOp(op string, err error) {
	if m == nil {
		return
	}
	m.CartOps.WithLabelValues(op, outcome(err)).Inc()
}

func (m *Metrics) ObserveEventFailure() {
	if m == nil {
		return
	}
	m.EventsFailed.Inc()
}
