package metrics

import (
	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records sizing estimates in Prometheus metrics.
type PromSink struct {
	estimates *prometheus.CounterVec
	capex     prometheus.Histogram
	payback   prometheus.Histogram
}

// NewPromSink registers estimate metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using the configured address.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sizing_estimates_total",
		Help: "Total number of sizing estimates computed",
	}, []string{"decision", "charger_class"})
	capex := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sizing_capex_eur",
		Help:    "CAPEX of computed estimates in EUR",
		Buckets: prometheus.ExponentialBuckets(1000, 2, 12),
	})
	payback := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sizing_payback_years",
		Help:    "Hardware-only payback of estimates with a defined payback",
		Buckets: prometheus.LinearBuckets(0.5, 0.5, 16),
	})

	if err := reg.Register(estimates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			estimates = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(capex); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			capex = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(payback); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			payback = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{estimates: estimates, capex: capex, payback: payback}, nil
}

// RecordEstimate increments the estimate counter and observes cost figures.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimates.WithLabelValues(string(ev.Result.Decision), string(ev.Result.ChargerClass)).Inc()
	s.capex.Observe(ev.Result.CapexEUR)
	if ev.Result.PaybackDefined {
		s.payback.Observe(ev.Result.PaybackYears)
	}
	return nil
}
