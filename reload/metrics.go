package reload

import "time"

// MetricsProvider is told about every document a Reloader handles.
// Implementations must be safe for use from the watch goroutine.
type MetricsProvider interface {
	OnStateChange(from, to State)
	OnDocumentReceived()
	// OnApplied reports how many keys the document carried.
	OnApplied(keys int, took time.Duration)
	// OnRejected reports the stage that failed: "decode" or "apply".
	OnRejected(stage string, took time.Duration)
}

// NoOpMetricsProvider discards everything. Embed it to implement a subset.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(State, State)       {}
func (NoOpMetricsProvider) OnDocumentReceived()              {}
func (NoOpMetricsProvider) OnApplied(int, time.Duration)     {}
func (NoOpMetricsProvider) OnRejected(string, time.Duration) {}
