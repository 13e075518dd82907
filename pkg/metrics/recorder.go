// Package metrics records per-program run durations and pushes them to a
// Prometheus Pushgateway when one is configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder collects metrics for one harness run on a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	duration  *prometheus.HistogramVec
	runsTotal prometheus.Counter
}

// NewRecorder builds a recorder with its own registry, so a batch run never
// leaks collectors into the default one.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parsecbench_program_duration_seconds",
			Help:    "Wall-clock duration of one benchmark-manager invocation.",
			Buckets: []float64{30, 60, 120, 300, 600, 1200, 3600},
		}, []string{"program"}),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parsecbench_programs_total",
			Help: "Completed benchmark program invocations.",
		}),
	}
	r.registry.MustRegister(r.duration, r.runsTotal)
	return r
}

// ObserveRun records one completed program invocation.
func (r *Recorder) ObserveRun(program string, seconds float64) {
	r.duration.WithLabelValues(program).Observe(seconds)
	r.runsTotal.Inc()
}

// Push sends the collected metrics to a Pushgateway. A missing URL is a no-op
// so runs without a gateway stay silent.
func (r *Recorder) Push(url string, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(r.registry).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
