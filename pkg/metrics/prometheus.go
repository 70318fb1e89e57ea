package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsIngested  *prometheus.CounterVec
	rowsSkipped   *prometheus.CounterVec
	candlesLoaded prometheus.Gauge
	lastReload    prometheus.Gauge
	ingestRuns    *prometheus.CounterVec
	ingestSeconds prometheus.Histogram
}

var (
	instance *Recorder
	once     sync.Once
)

// New returns the process-wide Prometheus metrics recorder.
// Collectors register with the default registry exactly once.
func New() *Recorder {
	once.Do(func() {
		instance = &Recorder{
			rowsIngested: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "priceboard_rows_ingested_total",
					Help: "Total number of CSV rows accepted during ingestion",
				},
				[]string{"symbol"},
			),
			rowsSkipped: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "priceboard_rows_skipped_total",
					Help: "Total number of CSV rows skipped during ingestion",
				},
				[]string{"reason"},
			),
			candlesLoaded: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "priceboard_candles_loaded",
					Help: "Number of candles written by the last successful ingestion",
				},
			),
			lastReload: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "priceboard_last_reload_timestamp_seconds",
					Help: "Unix time of the last successful ingestion",
				},
			),
			ingestRuns: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "priceboard_ingest_runs_total",
					Help: "Total number of ingestion runs by outcome",
				},
				[]string{"outcome"},
			),
			ingestSeconds: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "priceboard_ingest_duration_seconds",
					Help:    "Duration of ingestion runs in seconds",
					Buckets: prometheus.DefBuckets,
				},
			),
		}
	})
	return instance
}

// RecordRowIngested records an accepted CSV row for a symbol.
func (r *Recorder) RecordRowIngested(symbol string) {
	r.rowsIngested.WithLabelValues(symbol).Inc()
}

// RecordRowSkipped records a dropped CSV row with its skip reason.
func (r *Recorder) RecordRowSkipped(reason string) {
	r.rowsSkipped.WithLabelValues(reason).Inc()
}

// RecordCandlesLoaded records the size of the last persisted candle set.
func (r *Recorder) RecordCandlesLoaded(n int) {
	r.candlesLoaded.Set(float64(n))
	r.lastReload.Set(float64(time.Now().Unix()))
}

// RecordIngestRun records an ingestion run outcome and its duration.
func (r *Recorder) RecordIngestRun(outcome string, seconds float64) {
	r.ingestRuns.WithLabelValues(outcome).Inc()
	r.ingestSeconds.Observe(seconds)
}
