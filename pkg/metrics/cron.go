package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "carrental"
	subsystem = "cron"

	resultSuccess = "success"
	resultFailure = "failure"
)

// CronJobMetrics records run outcomes for the rental reminder worker.
// A nil receiver or unregistered collectors make every method a no-op so the
// worker can run without a metrics endpoint.
type CronJobMetrics struct {
	duration    *prometheus.HistogramVec
	runs        *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registerer.
func NewCronJobMetrics(reg prometheus.Registerer) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled rental jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "job_runs_total",
		Help:      "Scheduled rental job executions by result.",
	}, []string{"job", "result"})
	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "job_last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run per job.",
	}, []string{"job"})
	reg.MustRegister(duration, runs, lastSuccess)
	return &CronJobMetrics{
		duration:    duration,
		runs:        runs,
		lastSuccess: lastSuccess,
	}
}

// ObserveDuration records the duration for the named job.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(jobLabel(job)).Observe(duration.Seconds())
}

// IncSuccess counts a successful run and stamps the job's last success.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.runs == nil {
		return
	}
	c.runs.WithLabelValues(jobLabel(job), resultSuccess).Inc()
	c.lastSuccess.WithLabelValues(jobLabel(job)).SetToCurrentTime()
}

// IncFailure counts a failed run.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.runs == nil {
		return
	}
	c.runs.WithLabelValues(jobLabel(job), resultFailure).Inc()
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
