package load

import "github.com/zoobzio/capitan"

// Loader signals.
var (
	// Applied is emitted when loaded values were merged into a Configuration.
	Applied = capitan.NewSignal(
		"confz.load.applied",
		"Loaded values applied",
	)

	// ApplyFailed is emitted when loaded values were rejected.
	ApplyFailed = capitan.NewSignal(
		"confz.load.failed",
		"Loaded values rejected",
	)
)

// Field keys for loader events.
var (
	// KeyError is the rejection message.
	KeyError = capitan.NewStringKey("error")

	// KeyCount is the number of values applied.
	KeyCount = capitan.NewIntKey("count")
)
