// Package metrics exposes pipeline metrics in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status"
	OutcomeTransport = "transport"
	OutcomeMalformed = "malformed"
	OutcomeCanceled  = "canceled"
)

// Recorder is used by the aggregation pipeline and the upstream clients.
type Recorder interface {
	RecordFetch(account, outcome string, d time.Duration)
	RecordUpstreamStatus(service string, statusCode int)
	RecordDropped(reason string, n int)
	RecordAggregation(topic, lang string, posts int, fellBack bool)
}

type Collector struct {
	fetches        *prometheus.CounterVec
	fetchLatency   *prometheus.HistogramVec
	upstreamStatus *prometheus.CounterVec
	dropped        *prometheus.CounterVec
	aggregations   *prometheus.CounterVec
	postsServed    prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "news_pulse_fetch_total",
			Help: "Per-account upstream searches by outcome.",
		}, []string{"account", "outcome"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "news_pulse_fetch_latency_seconds",
			Help:    "Per-account upstream search latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"account"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "news_pulse_upstream_status_total",
			Help: "Non-2xx upstream responses by service and status code.",
		}, []string{"service", "status_code"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "news_pulse_posts_dropped_total",
			Help: "Posts removed by the filter stage, by reason.",
		}, []string{"reason"}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "news_pulse_aggregations_total",
			Help: "Completed aggregations by resolved topic and language.",
		}, []string{"topic", "lang", "fallback"}),
		postsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "news_pulse_posts_served",
			Help:    "Posts returned per aggregation.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(
		c.fetches,
		c.fetchLatency,
		c.upstreamStatus,
		c.dropped,
		c.aggregations,
		c.postsServed,
	)

	return c
}

func (c *Collector) RecordFetch(account, outcome string, d time.Duration) {
	c.fetches.WithLabelValues(account, outcome).Inc()
	c.fetchLatency.WithLabelValues(account).Observe(d.Seconds())
}

func (c *Collector) RecordUpstreamStatus(service string, statusCode int) {
	c.upstreamStatus.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordDropped(reason string, n int) {
	if n <= 0 {
		return
	}
	c.dropped.WithLabelValues(reason).Add(float64(n))
}

func (c *Collector) RecordAggregation(topic, lang string, posts int, fellBack bool) {
	c.aggregations.WithLabelValues(topic, lang, strconv.FormatBool(fellBack)).Inc()
	c.postsServed.Observe(float64(posts))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordFetch(string, string, time.Duration)   {}
func (Nop) RecordUpstreamStatus(string, int)            {}
func (Nop) RecordDropped(string, int)                   {}
func (Nop) RecordAggregation(string, string, int, bool) {}
