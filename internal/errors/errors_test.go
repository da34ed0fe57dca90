package errors

import (
	"fmt"
	"testing"
)

func TestDocPackError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DocPackError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestDocPackError_WithContext(t *testing.T) {
	err := New(CategoryNetwork, SeverityWarning, "fetch failed").
		WithContext("url", "https://example.invalid/db.json").
		WithContext("attempt", 2)

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["url"] != "https://example.invalid/db.json" {
		t.Errorf("Context[url] = %v, want the fetch URL", err.Context["url"])
	}
	if err.Context["attempt"] != 2 {
		t.Errorf("Context[attempt] = %v, want 2", err.Context["attempt"])
	}
}

func TestIsCategory(t *testing.T) {
	decodeErr := MissingField("index.json", "entries")

	if !IsCategory(decodeErr, CategoryDecode) {
		t.Error("expected decode category")
	}
	if IsCategory(decodeErr, CategoryNetwork) {
		t.Error("did not expect network category")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryDecode) {
		t.Error("plain errors have no category")
	}

	// Wrapped DocPackErrors are still classified.
	wrapped := fmt.Errorf("outer: %w", decodeErr)
	if !IsCategory(wrapped, CategoryDecode) {
		t.Error("expected wrapped decode category")
	}
}

func TestIsRetryable(t *testing.T) {
	transient := FetchTransient("https://example.invalid", fmt.Errorf("503"))
	if !IsRetryable(transient) {
		t.Error("expected transient fetch error to be retryable")
	}

	fatal := FetchFailed("https://example.invalid", fmt.Errorf("404"))
	if IsRetryable(fatal) {
		t.Error("did not expect fatal fetch error to be retryable")
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(ArchiveFailed("finish", fmt.Errorf("disk full"))); got != CategoryArchive {
		t.Errorf("GetCategory() = %v, want archive", got)
	}
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want internal fallback", got)
	}
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", ValidationFailed("title", "too long"), 2},
		{"config", ConfigNotFound("config.yaml"), 7},
		{"network", FetchFailed("https://example.invalid", fmt.Errorf("boom")), 8},
		{"decode", MissingField("index.json", "types"), 9},
		{"archive", ArchiveFailed("add", fmt.Errorf("boom")), 11},
		{"plain", fmt.Errorf("boom"), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(test.err); got != test.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, test.want)
			}
		})
	}
}
