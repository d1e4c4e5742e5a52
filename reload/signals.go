package reload

import "github.com/zoobzio/capitan"

// Reloader lifecycle signals.
var (
	// ReloaderStarted is emitted when a Reloader begins watching.
	ReloaderStarted = capitan.NewSignal(
		"confz.reload.started",
		"Reloader watching started",
	)

	// ReloaderStopped is emitted when a Reloader stops watching.
	ReloaderStopped = capitan.NewSignal(
		"confz.reload.stopped",
		"Reloader watching stopped",
	)

	// ReloaderStateChanged is emitted when a Reloader transitions between states.
	ReloaderStateChanged = capitan.NewSignal(
		"confz.reload.state.changed",
		"Reloader state transition",
	)
)

// Change processing signals.
var (
	// ReloaderChangeReceived is emitted when a document arrives from the watcher.
	ReloaderChangeReceived = capitan.NewSignal(
		"confz.reload.change.received",
		"Document received from watcher",
	)

	// ReloaderDecodeFailed is emitted when a document cannot be decoded.
	ReloaderDecodeFailed = capitan.NewSignal(
		"confz.reload.decode.failed",
		"Document decoding failed",
	)

	// ReloaderApplyFailed is emitted when a document has an unknown key or
	// a rejected value.
	ReloaderApplyFailed = capitan.NewSignal(
		"confz.reload.apply.failed",
		"Document rejected by configuration rules",
	)

	// ReloaderApplySucceeded is emitted when a document is applied.
	ReloaderApplySucceeded = capitan.NewSignal(
		"confz.reload.apply.succeeded",
		"Document applied",
	)
)

// Event fields. State values are State.String() names.
var (
	KeyState = capitan.NewStringKey("state")
	KeyFrom  = capitan.NewStringKey("from")
	KeyTo    = capitan.NewStringKey("to")

	// KeyError carries the error message of a failed stage.
	KeyError = capitan.NewStringKey("error")
	// KeyConfigKey names the key that made Configuration reject a document.
	// Empty when the failure is not tied to one key.
	KeyConfigKey = capitan.NewStringKey("config_key")
	// KeyCount is the number of keys in an applied document.
	KeyCount       = capitan.NewIntKey("count")
	KeyContentType = capitan.NewStringKey("content_type")

	KeyDebounce = capitan.NewDurationKey("debounce")
	KeyWatcher  = capitan.NewStringKey("watcher")
)
