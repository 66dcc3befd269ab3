// internal/metrics/metrics.go
//
// Prometheus metrics for board generation, search and lexicon loading.
// Each Collector owns its registry so tests can create as many as they like.
// All methods are safe on a nil *Collector, which records nothing.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service metrics.
type Collector struct {
	registry *prometheus.Registry

	BoardsGenerated *prometheus.CounterVec
	SolveDuration   prometheus.Histogram
	WordsFound      prometheus.Histogram
	LexiconLoads    *prometheus.CounterVec
	LexiconWords    prometheus.Gauge
	GamesStored     prometheus.Gauge
}

// NewCollector creates and registers the metrics under namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		BoardsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boards_generated_total",
			Help:      "Boards generated, by policy.",
		}, []string{"policy"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent searching a board.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		WordsFound: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "words_found",
			Help:      "Words found per searched board.",
			Buckets:   prometheus.LinearBuckets(0, 25, 12),
		}),
		LexiconLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lexicon_loads_total",
			Help:      "Lexicon load attempts, by result.",
		}, []string{"result"}),
		LexiconWords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lexicon_words",
			Help:      "Words in the loaded lexicon.",
		}),
		GamesStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "games_stored",
			Help:      "Game sessions held in memory.",
		}),
	}
	c.registry.MustRegister(
		c.BoardsGenerated,
		c.SolveDuration,
		c.WordsFound,
		c.LexiconLoads,
		c.LexiconWords,
		c.GamesStored,
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordBoard(policy string) {
	if c == nil {
		return
	}
	c.BoardsGenerated.WithLabelValues(policy).Inc()
}

func (c *Collector) RecordSolve(d time.Duration, words int) {
	if c == nil {
		return
	}
	c.SolveDuration.Observe(d.Seconds())
	c.WordsFound.Observe(float64(words))
}

// RecordLexiconLoad counts a load attempt; size is only used on success.
func (c *Collector) RecordLexiconLoad(err error, size int) {
	if c == nil {
		return
	}
	if err != nil {
		c.LexiconLoads.WithLabelValues("failed").Inc()
		return
	}
	c.LexiconLoads.WithLabelValues("ready").Inc()
	c.LexiconWords.Set(float64(size))
}

func (c *Collector) SetGamesStored(n int) {
	if c == nil {
		return
	}
	c.GamesStored.Set(float64(n))
}
