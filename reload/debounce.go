package reload

import (
	"time"

	"github.com/zoobzio/clockz"
)

// debouncer holds the latest document until wait has passed without a
// newer one arriving.
type debouncer struct {
	clock clockz.Clock
	wait  time.Duration
	timer clockz.Timer
	doc   []byte
	held  bool
}

// hold replaces the held document and restarts the wait.
func (d *debouncer) hold(doc []byte) {
	d.doc, d.held = doc, true
	if d.timer == nil {
		d.timer = d.clock.NewTimer(d.wait)
		return
	}
	if !d.timer.Stop() {
		select {
		case <-d.timer.C():
		default:
		}
	}
	d.timer.Reset(d.wait)
}

// fired is nil until the first hold.
func (d *debouncer) fired() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C()
}

// release hands over the held document, if any.
func (d *debouncer) release() ([]byte, bool) {
	doc, held := d.doc, d.held
	d.doc, d.held = nil, false
	return doc, held
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
