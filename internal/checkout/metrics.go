package checkout

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts checkout and invoice outcomes.
type Metrics struct {
	Outcomes *prometheus.CounterVec
	Invoices *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "outcomes_total",
		Help:      "Checkout attempts by terminal outcome.",
	}, []string{"outcome"})
	invoices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "invoice_submissions_total",
		Help:      "Invoice submission results.",
	}, []string{"status"})

	reg.MustRegister(outcomes, invoices)
	return &Metrics{Outcomes: outcomes, Invoices: invoices}
}
