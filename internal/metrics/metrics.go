// Package metrics registers the Prometheus metrics of the calculation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	TaxCalculations        prometheus.Counter
	InvestmentCalculations prometheus.Counter
	StatementMerges        prometheus.Counter
	SidecarsIngested       *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		TaxCalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calc_tax_calculations_total",
			Help: "Total number of income-tax calculations performed",
		}),
		InvestmentCalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calc_investment_calculations_total",
			Help: "Total number of investment calculations performed",
		}),
		StatementMerges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calc_statement_merges_total",
			Help: "Total number of cost-statement template merges served",
		}),
		SidecarsIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "calc_sidecars_ingested_total",
			Help: "Total number of document sidecars ingested, by review state",
		}, []string{"review_state"}),
	}
}

// IncTaxCalculations increments the tax calculation counter by 1
func (m *Metrics) IncTaxCalculations() {
	m.TaxCalculations.Inc()
}

// IncInvestmentCalculations increments the investment calculation counter by 1
func (m *Metrics) IncInvestmentCalculations() {
	m.InvestmentCalculations.Inc()
}

// IncStatementMerges increments the statement merge counter by 1
func (m *Metrics) IncStatementMerges() {
	m.StatementMerges.Inc()
}

// IncSidecarsIngested increments the sidecar counter for a review state
func (m *Metrics) IncSidecarsIngested(reviewState string) {
	m.SidecarsIngested.WithLabelValues(reviewState).Inc()
}
