package tracker

import (
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the tracker counters. It is separate from the default
// registry so the textfile export carries only mapty series.
var Registry = prometheus.NewRegistry()

var (
	workoutsLoggedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "tracker",
		Name:      "workouts_logged_total",
		Help:      "Number of workouts accepted from the form.",
	}, []string{"type"})

	invalidInputCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "tracker",
		Name:      "invalid_submissions_total",
		Help:      "Number of form submissions rejected by validation.",
	}, []string{"type"})

	persistErrorCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "storage",
		Name:      "persist_errors_total",
		Help:      "Number of failed writes of the workout list.",
	})

	workoutsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapty",
		Subsystem: "tracker",
		Name:      "workouts",
		Help:      "Number of workouts currently held in memory.",
	})
)

func init() {
	Registry.MustRegister(workoutsLoggedCounter, invalidInputCounter, persistErrorCounter, workoutsGauge)
}

// WriteMetrics exports the registry in the node-exporter textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

func recordLogged(kind domain.WorkoutKind) {
	workoutsLoggedCounter.WithLabelValues(string(kind)).Inc()
}

func recordInvalid(kind domain.WorkoutKind) {
	label := string(kind)
	if label == "" {
		label = "unknown"
	}
	invalidInputCounter.WithLabelValues(label).Inc()
}

func recordPersistError() {
	persistErrorCounter.Inc()
}

func recordCount(n int) {
	workoutsGauge.Set(float64(n))
}
