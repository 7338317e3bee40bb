package instrument

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Observer = (*HistogramObserver)(nil)

const (
	LabelLocation = "location"
)

type HistogramOpts struct {
	Namespace string
	Name      string    // default: instrumented_future_duration_seconds
	Buckets   []float64 // default: prometheus.DefBuckets
}

// HistogramObserver records elapsed time of instrumented Futures in a prometheus histogram labelled by call site.
type HistogramObserver struct {
	vec *prometheus.HistogramVec
}

// Create HistogramObserver and register it to reg.
//
// If an identical collector is already registered, the registered one is reused.
func NewHistogramObserver(reg prometheus.Registerer, op HistogramOpts) (*HistogramObserver, error) {
	if op.Name == "" {
		op.Name = "instrumented_future_duration_seconds"
	}
	if len(op.Buckets) < 1 {
		op.Buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: op.Namespace,
		Name:      op.Name,
		Help:      "Time between the first poll of an instrumented future and its completion.",
		Buckets:   op.Buckets,
	}, []string{LabelLocation})

	if err := reg.Register(vec); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("failed to register histogram %v, %w", op.Name, err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("collector %v already registered with a different type, %w", op.Name, err)
		}
		vec = existing
	}
	return &HistogramObserver{vec: vec}, nil
}

func (h *HistogramObserver) Observe(r Record) {
	h.vec.WithLabelValues(r.Location.String()).Observe(r.Elapsed.Seconds())
}

// Underlying collector.
func (h *HistogramObserver) Collector() *prometheus.HistogramVec {
	return h.vec
}
