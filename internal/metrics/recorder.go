package metrics

import "time"

// ResultLabel enumerates fetch/archive result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for fetch and generation metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be cheap enough to call inside the page-render loop.
type Recorder interface {
	ObserveFetchDuration(resource string, d time.Duration, success bool)
	IncFetchRetry(resource string)
	AddPagesRendered(n int)
	IncMissingPage()
	ObserveArchiveDuration(slug string, d time.Duration)
	IncArchiveResult(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetchDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncFetchRetry(string)                            {}
func (NoopRecorder) AddPagesRendered(int)                            {}
func (NoopRecorder) IncMissingPage()                                 {}
func (NoopRecorder) ObserveArchiveDuration(string, time.Duration)    {}
func (NoopRecorder) IncArchiveResult(ResultLabel)                    {}
