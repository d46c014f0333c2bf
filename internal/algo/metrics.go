package algo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	planDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapf",
		Subsystem: "planner",
		Name:      "plan_duration_seconds",
		Help:      "Wall-clock time spent inside a single Solve call.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"strategy"})

	planAgents = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapf",
		Subsystem: "planner",
		Name:      "plan_agent_count",
		Help:      "Number of agents passed to a single Solve call.",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
	}, []string{"strategy"})

	windowShrinkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapf",
		Subsystem: "planner",
		Name:      "window_shrink_total",
		Help:      "Number of times windowed CA* v2 shrank the active window within a round.",
	}, []string{})
)

// recordPlanMetrics reports a completed Solve call to the process-wide
// registry. Every Planner implementation calls this once per Solve call
// that returns without error; a Solve that returns an error records nothing.
func recordPlanMetrics(strategy string, duration time.Duration, numAgents int) {
	planDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	planAgents.WithLabelValues(strategy).Observe(float64(numAgents))
}

// recordWindowShrink reports a single adaptive-shrink event from windowed
// CA* v2 (§4.6 item 3).
func recordWindowShrink() {
	windowShrinkTotal.WithLabelValues().Inc()
}
