// Package metrics exports solver outcomes as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/gridpath/solver"
)

// Collector implements solver.Observer.
type Collector struct {
	searches *prometheus.CounterVec
	expanded prometheus.Histogram
	duration *prometheus.HistogramVec
	cost     prometheus.Histogram
}

var _ solver.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_searches_total",
				Help: "Total number of solves by outcome",
			},
			[]string{"outcome"},
		),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_expanded_nodes",
			Help:    "Nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridpath_search_duration_seconds",
				Help:    "Duration of solves",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"outcome"},
		),
		cost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_path_cost",
			Help:    "Total cost of found paths",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
	}
	for _, collector := range []prometheus.Collector{c.searches, c.expanded, c.duration, c.cost} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveSearch records one solve.
func (c *Collector) ObserveSearch(r solver.Report) {
	outcome := string(r.Outcome)
	c.searches.WithLabelValues(outcome).Inc()
	c.duration.WithLabelValues(outcome).Observe(r.Duration.Seconds())
	if r.Outcome == solver.OutcomeCached || r.Outcome == solver.OutcomeInvalidEndpoint {
		return
	}
	c.expanded.Observe(float64(r.Expanded))
	if r.Outcome == solver.OutcomeFound {
		c.cost.Observe(r.Cost)
	}
}
