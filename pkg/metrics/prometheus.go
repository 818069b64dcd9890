package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reposFetched     *prometheus.CounterVec
	domainsGenerated prometheus.Counter
	evaluationsSent  *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	portfolioSize    prometheus.Gauge
	portfolioMoney   *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reposFetched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domainflip_repos_fetched_total",
				Help: "Total number of repositories fetched from the trend source",
			},
			[]string{"query"},
		),
		domainsGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "domainflip_domains_generated_total",
				Help: "Total number of candidate domains generated",
			},
		),
		evaluationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domainflip_evaluations_sent_total",
				Help: "Total number of evaluations sent to backend",
			},
			[]string{"backend", "tld"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domainflip_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		portfolioSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "domainflip_portfolio_domains",
				Help: "Number of domains in the latest portfolio",
			},
		),
		portfolioMoney: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "domainflip_portfolio_dollars",
				Help: "Latest portfolio totals in dollars by kind",
			},
			[]string{"kind"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "domainflip_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordReposFetched records repositories fetched for a search query.
func (r *Recorder) RecordReposFetched(query string, count int) {
	r.reposFetched.WithLabelValues(query).Add(float64(count))
}

// RecordDomainsGenerated records generated candidate domains.
func (r *Recorder) RecordDomainsGenerated(count int) {
	r.domainsGenerated.Add(float64(count))
}

// RecordEvaluationSent records an evaluation sent to a backend.
func (r *Recorder) RecordEvaluationSent(backend, tld string) {
	r.evaluationsSent.WithLabelValues(backend, tld).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordPortfolio records the latest portfolio totals.
func (r *Recorder) RecordPortfolio(size, investment int, profit, roi float64) {
	r.portfolioSize.Set(float64(size))
	r.portfolioMoney.WithLabelValues("investment").Set(float64(investment))
	r.portfolioMoney.WithLabelValues("profit").Set(profit)
	r.portfolioMoney.WithLabelValues("roi_percent").Set(roi)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
