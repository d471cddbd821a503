// Package metrics counts scan and selection outcomes on a private Prometheus
// registry owned by the caller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "accneat"

type Collector struct {
	registry      *prometheus.Registry
	filesScanned  prometheus.Counter
	genomesParsed prometheus.Counter
	parseFailures *prometheus.CounterVec
	incomplete    prometheus.Counter
	bestFitness   prometheus.Gauge
	selections    *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		filesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Candidate genome dump files handed to the parser.",
		}),
		genomesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genomes_parsed_total",
			Help:      "Genome dump files parsed successfully.",
		}),
		parseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Genome dump files skipped because parsing failed, by failure kind.",
		}, []string{"kind"}),
		incomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genomes_incomplete_total",
			Help:      "Parsed genomes whose file ended before the genomeend marker.",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Fitness of the most recently selected organism.",
		}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Fittest-organism selections, by outcome.",
		}, []string{"outcome"}),
	}
	c.registry.MustRegister(c.filesScanned, c.genomesParsed, c.parseFailures, c.incomplete, c.bestFitness, c.selections)
	return c
}

func (c *Collector) FileScanned() { c.filesScanned.Inc() }

func (c *Collector) GenomeParsed(complete bool) {
	c.genomesParsed.Inc()
	if !complete {
		c.incomplete.Inc()
	}
}

func (c *Collector) ParseFailed(kind string) { c.parseFailures.WithLabelValues(kind).Inc() }

// SelectionDone records one selection; found is false when no file parsed.
func (c *Collector) SelectionDone(found bool, fitness float64) {
	if !found {
		c.selections.WithLabelValues("empty").Inc()
		return
	}
	c.selections.WithLabelValues("found").Inc()
	c.bestFitness.Set(fitness)
}

func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// WriteTextfile dumps the current values in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
