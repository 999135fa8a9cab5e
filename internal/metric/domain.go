package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ Orders    = (*orderMetrics)(nil)
	_ Inventory = (*inventoryMetrics)(nil)
)

type orderMetrics struct {
	created       *prometheus.CounterVec
	failed        *prometheus.CounterVec
	handoffFailed prometheus.Counter
	statusChanged *prometheus.CounterVec
}

func newOrderMetrics(registry *prometheus.Registry) *orderMetrics {
	created := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders persisted, by shipping zone and modality",
		},
		[]string{"zone", "modality"},
	)

	failed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "Rejected order creations by error kind",
		},
		[]string{"kind"},
	)

	handoffFailed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_handoff_failures_total",
			Help: "Orders persisted whose handoff link could not be generated or stored",
		},
	)

	statusChanged := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_status_changes_total",
			Help: "Admin status transitions",
		},
		[]string{"from", "to"},
	)

	registry.MustRegister(created, failed, handoffFailed, statusChanged)

	return &orderMetrics{
		created:       created,
		failed:        failed,
		handoffFailed: handoffFailed,
		statusChanged: statusChanged,
	}
}

func (m *orderMetrics) Created(zone, modality string) {
	m.created.WithLabelValues(zone, modality).Inc()
}

func (m *orderMetrics) Failed(kind string) {
	m.failed.WithLabelValues(kind).Inc()
}

func (m *orderMetrics) HandoffFailed() {
	m.handoffFailed.Inc()
}

func (m *orderMetrics) StatusChanged(from, to string) {
	m.statusChanged.WithLabelValues(from, to).Inc()
}

type inventoryMetrics struct {
	reconciliations prometheus.Counter
	sizeOps         *prometheus.CounterVec
	rejected        *prometheus.CounterVec
}

func newInventoryMetrics(registry *prometheus.Registry) *inventoryMetrics {
	reconciliations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_reconciliations_total",
			Help: "Committed size reconciliations",
		},
	)

	sizeOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_size_operations_total",
			Help: "Size rows touched by reconciliations, by operation",
		},
		[]string{"op"},
	)

	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_reconciliations_rejected_total",
			Help: "Reconciliations that did not commit, by error kind",
		},
		[]string{"kind"},
	)

	registry.MustRegister(reconciliations, sizeOps, rejected)

	return &inventoryMetrics{
		reconciliations: reconciliations,
		sizeOps:         sizeOps,
		rejected:        rejected,
	}
}

func (m *inventoryMetrics) Reconciled(created, updated, deleted int) {
	m.reconciliations.Inc()
	m.sizeOps.WithLabelValues("create").Add(float64(created))
	m.sizeOps.WithLabelValues("update").Add(float64(updated))
	m.sizeOps.WithLabelValues("delete").Add(float64(deleted))
}

func (m *inventoryMetrics) Rejected(kind string) {
	m.rejected.WithLabelValues(kind).Inc()
}
