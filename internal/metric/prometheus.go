package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Factory = (*prometheusFactory)(nil)

type prometheusFactory struct {
	registry    *prometheus.Registry
	http        *httpMetrics
	transaction *transactionMetrics
	orders      *orderMetrics
	inventory   *inventoryMetrics
}

// NewFactory builds every collector on a private registry, so tests can create
// as many factories as they like without duplicate-registration panics.
func NewFactory() Factory {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &prometheusFactory{
		registry:    registry,
		http:        newHTTPMetrics(registry),
		transaction: newTransactionMetrics(registry),
		orders:      newOrderMetrics(registry),
		inventory:   newInventoryMetrics(registry),
	}
}

func (f *prometheusFactory) HTTP() HTTP {
	return f.http
}

func (f *prometheusFactory) Transaction() Transaction {
	return f.transaction
}

func (f *prometheusFactory) Orders() Orders {
	return f.orders
}

func (f *prometheusFactory) Inventory() Inventory {
	return f.inventory
}

func (f *prometheusFactory) Handler() http.Handler {
	return promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{Registry: f.registry})
}
