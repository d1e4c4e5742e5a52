package reload

import "context"

// ChannelWatcher feeds documents the host already produces, such as an
// admin endpoint or a test, into a Reloader.
type ChannelWatcher struct {
	src    <-chan []byte
	direct bool
}

// NewChannelWatcher relays src through a goroutine that stops when the
// Watch context ends.
func NewChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src}
}

// NewSyncChannelWatcher hands src to the Reloader as is. Pair it with
// Reloader.SyncMode to control exactly when documents are applied.
func NewSyncChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src, direct: true}
}

// Watch implements Watcher.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.src, nil
	}
	out := make(chan []byte)
	go relay(ctx, w.src, out)
	return out, nil
}

// relay copies src to out until src closes or ctx ends, then closes out.
func relay(ctx context.Context, src <-chan []byte, out chan<- []byte) {
	defer close(out)
	for {
		var doc []byte
		var ok bool
		select {
		case <-ctx.Done():
			return
		case doc, ok = <-src:
		}
		if !ok || !send(ctx, out, doc) {
			return
		}
	}
}

// send delivers doc unless ctx ends first.
func send(ctx context.Context, out chan<- []byte, doc []byte) bool {
	select {
	case out <- doc:
		return true
	case <-ctx.Done():
		return false
	}
}
