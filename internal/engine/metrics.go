package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the package's Prometheus collectors. Cardinality is
// bounded by construction: no per-sound or per-group labels, only
// process-wide gauges/counters/histograms.
var (
	entriesPlaying = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "engine_mixer_entries_playing",
		Help: "Number of Mixer entries currently in the playing partition",
	})

	entriesPaused = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "engine_mixer_entries_paused",
		Help: "Number of Mixer entries currently in the paused partition",
	})

	entriesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_mixer_entries_removed_total",
		Help: "Entries dropped from the Mixer at end-of-source with remove_on_end set",
	})

	deviceRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_device_rebuilds_total",
		Help: "Number of times the device Supervisor rebuilt the output stream",
	})

	writeSamplesDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_write_samples_duration_seconds",
		Help:    "Wall-clock time spent in Mixer.WriteSamples",
		Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})
)

// Metrics is an opaque handle a Mixer records observations through. A
// nil *Metrics (the zero value of an unset field) disables recording
// entirely — metrics are always optional.
type Metrics struct{}

// NewMetrics returns a handle wired to the package-level collectors
// above. Safe to share across every Mixer in a process; the collectors
// are process-wide by design; call it once and attach the result to
// whichever Mixers should report it.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Attach wires m to receive this Mixer's counts and durations.
func (mx *Mixer[G]) Attach(m *Metrics) {
	mx.mu.Lock()
	defer mx.mu.Unlock()
	mx.metrics = m
}

func (m *Metrics) observeCounts(playing, paused int) {
	if m == nil {
		return
	}
	entriesPlaying.Set(float64(playing))
	entriesPaused.Set(float64(paused))
}

func (m *Metrics) incRemoved() {
	if m == nil {
		return
	}
	entriesRemoved.Inc()
}

func (m *Metrics) incDeviceRebuild() {
	if m == nil {
		return
	}
	deviceRebuilds.Inc()
}

// IncDeviceRebuild records a stream rebuild through m. A nil m records
// nothing.
func (m *Metrics) IncDeviceRebuild() {
	m.incDeviceRebuild()
}

// IncDeviceRebuild records a Supervisor-triggered stream rebuild on the
// package-level counter. The device package calls this directly, since a
// Supervisor holds no *Metrics.
func IncDeviceRebuild() {
	deviceRebuilds.Inc()
}

func observeWriteSamples(d time.Duration) {
	writeSamplesDuration.Observe(d.Seconds())
}
