package reload

import "context"

// Watcher observes a source for changes and emits raw documents on a channel.
type Watcher interface {
	// Watch begins observing the source and returns a channel that emits
	// the document whenever it changes. The channel is closed when the
	// context is canceled or an unrecoverable error occurs.
	//
	// Implementations should emit the current document immediately so the
	// first Start can apply it.
	Watch(ctx context.Context) (<-chan []byte, error)
}
