package reload

import (
	"slices"
	"sync"
)

// errorLog keeps the most recent errors up to a fixed limit.
// A nil *errorLog is valid and records nothing.
type errorLog struct {
	mu    sync.Mutex
	limit int
	errs  []error
}

// newErrorLog returns nil for limit <= 0.
func newErrorLog(limit int) *errorLog {
	if limit <= 0 {
		return nil
	}
	return &errorLog{limit: limit, errs: make([]error, 0, limit)}
}

// add appends err, evicting the oldest entry once the limit is reached.
func (l *errorLog) add(err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.errs) == l.limit {
		l.errs = slices.Delete(l.errs, 0, 1)
	}
	l.errs = append(l.errs, err)
}

func (l *errorLog) reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.errs)
	l.errs = l.errs[:0]
}

// list returns the recorded errors, oldest first, or nil if there are none.
func (l *errorLog) list() []error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.errs) == 0 {
		return nil
	}
	return slices.Clone(l.errs)
}
