package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loan_simulator"

// Collector records service metrics. A nil *Collector is valid and records nothing.
type Collector struct {
	// Request metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	// Engine metrics
	evaluationsTotal  *prometheus.CounterVec
	calculationsTotal *prometheus.CounterVec
	computeDuration   *prometheus.HistogramVec

	// Cache metrics
	cacheLookups *prometheus.CounterVec
	cacheErrors  *prometheus.CounterVec

	// Scheduler metrics
	jobRuns *prometheus.CounterVec
}

// NewCollector registers all metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		evaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "eligibility_evaluations_total",
				Help:      "Eligibility evaluations by outcome and risk category",
			},
			[]string{"eligible", "risk_category"},
		),
		calculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_calculations_total",
				Help:      "Rate calculations by loan type",
			},
			[]string{"loan_type"},
		),
		computeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "compute_duration_seconds",
				Help:      "Time spent in the evaluation engine",
				Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
			[]string{"operation"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Result cache lookups by operation and result",
			},
			[]string{"operation", "result"},
		),
		cacheErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_errors_total",
				Help:      "Result cache failures by operation and action",
			},
			[]string{"operation", "action"},
		),
		jobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_job_runs_total",
				Help:      "Scheduled job runs by job and status",
			},
			[]string{"job", "status"},
		),
	}
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordEvaluation(eligible bool, riskCategory string, duration time.Duration) {
	if c == nil {
		return
	}
	c.evaluationsTotal.WithLabelValues(strconv.FormatBool(eligible), riskCategory).Inc()
	c.computeDuration.WithLabelValues("eligibility").Observe(duration.Seconds())
}

func (c *Collector) RecordCalculation(loanType string, duration time.Duration) {
	if c == nil {
		return
	}
	c.calculationsTotal.WithLabelValues(loanType).Inc()
	c.computeDuration.WithLabelValues("rate").Observe(duration.Seconds())
}

// RecordCacheLookup counts a hit or a miss
func (c *Collector) RecordCacheLookup(operation string, hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(operation, result).Inc()
}

func (c *Collector) RecordCacheError(operation, action string) {
	if c == nil {
		return
	}
	c.cacheErrors.WithLabelValues(operation, action).Inc()
}

func (c *Collector) RecordJobRun(job string, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.jobRuns.WithLabelValues(job, status).Inc()
}
