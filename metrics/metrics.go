// Package metrics exports solver, builder and cache events as Prometheus
// collectors.
//
// A Recorder implements power.Observer. All methods are safe on a nil
// *Recorder, so callers can leave metrics off without branching.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/genopca/covariance"
	"github.com/katalvlaran/genopca/power"
)

const namespace = "genopca"

// Label values.
const (
	StatusConverged    = "converged"
	StatusNotConverged = "not_converged"

	MarkersKept        = "kept"
	MarkersMonomorphic = "monomorphic"
	MarkersAllMissing  = "all_missing"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Recorder owns the collectors registered by NewRecorder.
type Recorder struct {
	components   *prometheus.CounterVec
	iterations   prometheus.Histogram
	seconds      prometheus.Histogram
	markers      *prometheus.GaugeVec
	cacheLookups *prometheus.CounterVec
}

var _ power.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil). Registration errors, such as a
// second Recorder on the same registry, are returned as is.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		components: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "power",
			Name:      "components_total",
			Help:      "Principal components extracted, by convergence status.",
		}, []string{"status"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "power",
			Name:      "iterations",
			Help:      "Matrix-vector products per extracted component.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~262k
		}),
		seconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "power",
			Name:      "component_seconds",
			Help:      "Wall time per extracted component in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		}),
		markers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "covariance",
			Name:      "markers",
			Help:      "Markers in the last covariance build, by outcome.",
		}, []string{"state"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "covariance",
			Name:      "cache_lookups_total",
			Help:      "Covariance cache lookups, by result.",
		}, []string{"result"}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{r.components, r.iterations, r.seconds, r.markers, r.cacheLookups} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Pre-create label sets so they export zero from the start.
	r.components.WithLabelValues(StatusConverged)
	r.components.WithLabelValues(StatusNotConverged)
	r.cacheLookups.WithLabelValues(CacheHit)
	r.cacheLookups.WithLabelValues(CacheMiss)

	return r, nil
}

// ObserveComponent implements power.Observer.
func (r *Recorder) ObserveComponent(c power.Component, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := StatusConverged
	if !c.Converged {
		status = StatusNotConverged
	}
	r.components.WithLabelValues(status).Inc()
	r.iterations.Observe(float64(c.Iterations))
	r.seconds.Observe(elapsed.Seconds())
}

// ObserveCovariance publishes the marker counts of one build.
func (r *Recorder) ObserveCovariance(s *covariance.Stats) {
	if r == nil || s == nil {
		return
	}
	r.markers.WithLabelValues(MarkersKept).Set(float64(s.Divisor()))
	r.markers.WithLabelValues(MarkersMonomorphic).Set(float64(s.Monomorphic))
	r.markers.WithLabelValues(MarkersAllMissing).Set(float64(s.AllMissing))
}

// ObserveCacheLookup counts one covariance cache lookup.
func (r *Recorder) ObserveCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}
