package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	fetchDuration   *prom.HistogramVec
	fetchRetries    *prom.CounterVec
	pagesRendered   prom.Counter
	missingPages    prom.Counter
	archiveDuration *prom.HistogramVec
	archiveResults  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.fetchDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docpack",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of individual DevDocs resource fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"resource", "result"})
		pr.fetchRetries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpack",
			Name:      "fetch_retries_total",
			Help:      "Total fetch retries (transient failures)",
		}, []string{"resource"})
		pr.pagesRendered = prom.NewCounter(prom.CounterOpts{
			Namespace: "docpack",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered and added to archives",
		})
		pr.missingPages = prom.NewCounter(prom.CounterOpts{
			Namespace: "docpack",
			Name:      "missing_pages_total",
			Help:      "Indexed pages absent from the content database",
		})
		pr.archiveDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docpack",
			Name:      "archive_duration_seconds",
			Help:      "Duration of per-set archive generation",
			Buckets:   prom.DefBuckets,
		}, []string{"slug"})
		pr.archiveResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docpack",
			Name:      "archive_results_total",
			Help:      "Archive outcomes by final status",
		}, []string{"result"})
		reg.MustRegister(pr.fetchDuration, pr.fetchRetries, pr.pagesRendered, pr.missingPages, pr.archiveDuration, pr.archiveResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveFetchDuration(resource string, d time.Duration, success bool) {
	if p == nil || p.fetchDuration == nil {
		return
	}
	result := string(ResultSuccess)
	if !success {
		result = string(ResultFailed)
	}
	p.fetchDuration.WithLabelValues(resource, result).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFetchRetry(resource string) {
	if p == nil || p.fetchRetries == nil {
		return
	}
	p.fetchRetries.WithLabelValues(resource).Inc()
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) IncMissingPage() {
	if p == nil || p.missingPages == nil {
		return
	}
	p.missingPages.Inc()
}

func (p *PrometheusRecorder) ObserveArchiveDuration(slug string, d time.Duration) {
	if p == nil || p.archiveDuration == nil {
		return
	}
	p.archiveDuration.WithLabelValues(slug).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncArchiveResult(result ResultLabel) {
	if p == nil || p.archiveResults == nil {
		return
	}
	p.archiveResults.WithLabelValues(string(result)).Inc()
}
