package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderRegisters(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveFetchDuration("index.json", 50*time.Millisecond, true)
	pr.ObserveFetchDuration("db.json", 2*time.Second, false)
	pr.IncFetchRetry("db.json")
	pr.AddPagesRendered(120)
	pr.IncMissingPage()
	pr.ObserveArchiveDuration("go", 3*time.Second)
	pr.IncArchiveResult(ResultSuccess)
	pr.IncArchiveResult(ResultSkipped)

	if got := testutil.ToFloat64(pr.pagesRendered); got != 120 {
		t.Fatalf("pages rendered = %v, want 120", got)
	}
	if got := testutil.ToFloat64(pr.missingPages); got != 1 {
		t.Fatalf("missing pages = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.fetchRetries.WithLabelValues("db.json")); got != 1 {
		t.Fatalf("fetch retries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.archiveResults.WithLabelValues(string(ResultSuccess))); got != 1 {
		t.Fatalf("archive successes = %v, want 1", got)
	}
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	// None of these should panic on a nil receiver.
	pr.ObserveFetchDuration("index.json", time.Second, true)
	pr.IncFetchRetry("index.json")
	pr.AddPagesRendered(1)
	pr.IncMissingPage()
	pr.ObserveArchiveDuration("go", time.Second)
	pr.IncArchiveResult(ResultFailed)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.AddPagesRendered(5)
	r.IncArchiveResult(ResultFailed)
}
