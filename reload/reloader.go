package reload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/confz"
)

// DefaultDebounce is how long a Reloader waits for further documents
// before applying the latest one.
const DefaultDebounce = 100 * time.Millisecond

// Start errors.
var (
	ErrAlreadyStarted = errors.New("reloader already started")
	ErrWatcherClosed  = errors.New("watcher closed before emitting a document")
	ErrStartupTimeout = errors.New("no document received before startup timeout")
)

// Reloader keeps a Configuration in step with documents from a Watcher.
// A rejected document changes nothing: the values from the last good
// document, or the defaults, stay in effect.
//
// While a Reloader runs, every access to its Configuration must go
// through Get, Current or Update.
type Reloader struct {
	cfg *confz.Configuration
	mu  sync.RWMutex

	watcher        Watcher
	codec          Codec
	clock          clockz.Clock
	metrics        MetricsProvider
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	replace        bool
	onStop         func(State)

	state     atomic.Int32
	applied   atomic.Bool
	lastError atomic.Pointer[error]
	history   *errorLog

	startMu sync.Mutex
	started bool
	pending <-chan []byte // sync mode only, guarded by startMu
}

// New creates a Reloader for cfg fed by watcher. Documents are decoded
// as JSON unless another Codec is set.
func New(cfg *confz.Configuration, watcher Watcher) *Reloader {
	r := &Reloader{
		cfg:      cfg,
		watcher:  watcher,
		codec:    JSONCodec{},
		clock:    clockz.RealClock,
		metrics:  NoOpMetricsProvider{},
		debounce: DefaultDebounce,
	}
	r.state.Store(int32(StateLoading))
	return r
}

// The chainable setters below must be called before Start.

// Debounce sets the quiet period before a document is applied.
func (r *Reloader) Debounce(d time.Duration) *Reloader {
	r.debounce = d
	return r
}

// SyncMode applies only the first document in Start. Later documents wait
// until Process is called.
func (r *Reloader) SyncMode() *Reloader {
	r.syncMode = true
	return r
}

// Clock replaces the clock behind debouncing and the startup timeout.
func (r *Reloader) Clock(clock clockz.Clock) *Reloader {
	r.clock = clock
	return r
}

// Codec sets the document decoder.
func (r *Reloader) Codec(codec Codec) *Reloader {
	r.codec = codec
	return r
}

// StartupTimeout bounds how long Start waits for the first document.
// Zero waits for as long as the context allows.
func (r *Reloader) StartupTimeout(d time.Duration) *Reloader {
	r.startupTimeout = d
	return r
}

// Metrics sets the metrics provider. nil restores the no-op provider.
func (r *Reloader) Metrics(provider MetricsProvider) *Reloader {
	if provider == nil {
		provider = NoOpMetricsProvider{}
	}
	r.metrics = provider
	return r
}

// OnStop registers fn to receive the final state when the watch loop ends.
func (r *Reloader) OnStop(fn func(State)) *Reloader {
	r.onStop = fn
	return r
}

// ErrorHistorySize keeps the last n rejection errors for ErrorHistory.
func (r *Reloader) ErrorHistorySize(n int) *Reloader {
	r.history = newErrorLog(n)
	return r
}

// Replace treats each document as the complete set of explicit values, so
// keys it leaves out fall back to their defaults. Without it documents are
// merged over the current values.
func (r *Reloader) Replace() *Reloader {
	r.replace = true
	return r
}

// Get reads key under the read lock.
func (r *Reloader) Get(key string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Get(key)
}

// Current snapshots the Configuration under the read lock.
func (r *Reloader) Current() confz.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Current()
}

// Update runs fn with exclusive access to the Configuration. Host writes
// made here may be overwritten by the next document.
func (r *Reloader) Update(fn func(*confz.Configuration) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.cfg)
}

// State returns the current state.
func (r *Reloader) State() State {
	return State(r.state.Load())
}

// LastError returns why the most recent document was rejected, or nil if
// it was applied.
func (r *Reloader) LastError() error {
	if p := r.lastError.Load(); p != nil {
		return *p
	}
	return nil
}

// ErrorHistory returns rejection errors since the last applied document,
// oldest first. It is nil unless ErrorHistorySize was set.
func (r *Reloader) ErrorHistory() []error {
	return r.history.list()
}

// Start applies the first document from the watcher and then, unless in
// sync mode, keeps applying documents in the background until ctx ends.
//
// A rejected first document is returned as the error, but the Reloader
// still watches for a valid one.
func (r *Reloader) Start(ctx context.Context) error {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.startMu.Unlock()

	capitan.Emit(ctx, ReloaderStarted,
		KeyDebounce.Field(r.debounce),
		KeyWatcher.Field(fmt.Sprintf("%T", r.watcher)),
	)

	docs, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	first, err := r.awaitFirst(ctx, docs)
	if err != nil {
		return err
	}
	r.received(ctx)
	firstErr := r.process(ctx, first)

	if r.syncMode {
		r.startMu.Lock()
		r.pending = docs
		r.startMu.Unlock()
	} else {
		go r.watch(ctx, docs)
	}
	return firstErr
}

func (r *Reloader) awaitFirst(ctx context.Context, docs <-chan []byte) ([]byte, error) {
	if r.startupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = r.clock.WithTimeout(ctx, r.startupTimeout)
		defer cancel()
	}
	select {
	case doc, ok := <-docs:
		if !ok {
			return nil, ErrWatcherClosed
		}
		return doc, nil
	case <-ctx.Done():
		if r.startupTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w (%v)", ErrStartupTimeout, r.startupTimeout)
		}
		return nil, ctx.Err()
	}
}

// Process applies the next waiting document in sync mode. It reports
// false when not in sync mode, when nothing is waiting, or when the
// watcher has closed.
func (r *Reloader) Process(ctx context.Context) bool {
	if !r.syncMode {
		return false
	}
	r.startMu.Lock()
	pending := r.pending
	r.startMu.Unlock()

	select {
	case doc, ok := <-pending:
		if !ok {
			return false
		}
		r.received(ctx)
		_ = r.process(ctx, doc) //nolint:errcheck // recorded in LastError
		return true
	default:
		return false
	}
}

func (r *Reloader) received(ctx context.Context) {
	capitan.Emit(ctx, ReloaderChangeReceived)
	r.metrics.OnDocumentReceived()
}

// process decodes doc and applies it as one Merge or Replace.
func (r *Reloader) process(ctx context.Context, doc []byte) error {
	start := r.clock.Now()
	from := r.State()

	values, err := r.codec.Decode(doc)
	if err != nil {
		r.reject(ctx, from, "decode", start, err)
		capitan.Emit(ctx, ReloaderDecodeFailed,
			KeyError.Field(err.Error()),
			KeyContentType.Field(r.codec.ContentType()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	if err := r.apply(values); err != nil {
		r.reject(ctx, from, "apply", start, err)
		capitan.Emit(ctx, ReloaderApplyFailed,
			KeyError.Field(err.Error()),
			KeyConfigKey.Field(offendingKey(err)),
		)
		return fmt.Errorf("apply failed: %w", err)
	}

	r.applied.Store(true)
	r.lastError.Store(nil)
	r.history.reset()
	r.setState(ctx, from, StateHealthy)
	capitan.Emit(ctx, ReloaderApplySucceeded, KeyCount.Field(len(values)))
	r.metrics.OnApplied(len(values), r.clock.Since(start))
	return nil
}

func (r *Reloader) apply(values map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replace {
		return r.cfg.Replace(values)
	}
	return r.cfg.Merge(values)
}

// reject records err. Before any document has been applied the Reloader
// is Empty, afterwards Degraded.
func (r *Reloader) reject(ctx context.Context, from State, stage string, start time.Time, err error) {
	r.lastError.Store(&err)
	r.history.add(err)
	to := StateDegraded
	if !r.applied.Load() {
		to = StateEmpty
	}
	r.setState(ctx, from, to)
	r.metrics.OnRejected(stage, r.clock.Since(start))
}

// offendingKey names the key a Configuration error refers to.
func offendingKey(err error) string {
	var unknown *confz.UnknownKeyError
	if errors.As(err, &unknown) {
		return unknown.Key
	}
	var invalid *confz.InvalidValueError
	if errors.As(err, &invalid) {
		return invalid.Key
	}
	return ""
}

func (r *Reloader) setState(ctx context.Context, from, to State) {
	if from == to {
		return
	}
	r.state.Store(int32(to))
	capitan.Emit(ctx, ReloaderStateChanged,
		KeyFrom.Field(from.String()),
		KeyTo.Field(to.String()),
	)
	r.metrics.OnStateChange(from, to)
}

// watch applies debounced documents until ctx ends or docs closes. A
// document still held when docs closes is applied before returning.
func (r *Reloader) watch(ctx context.Context, docs <-chan []byte) {
	d := &debouncer{clock: r.clock, wait: r.debounce}
	defer d.stop()
	defer r.stopped(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case doc, ok := <-docs:
			if !ok {
				if held, ok := d.release(); ok {
					_ = r.process(ctx, held) //nolint:errcheck // recorded in LastError
				}
				return
			}
			r.received(ctx)
			d.hold(doc)

		case <-d.fired():
			if held, ok := d.release(); ok {
				_ = r.process(ctx, held) //nolint:errcheck // recorded in LastError
			}
		}
	}
}

func (r *Reloader) stopped(ctx context.Context) {
	final := r.State()
	capitan.Emit(ctx, ReloaderStopped, KeyState.Field(final.String()))
	if r.onStop != nil {
		r.onStop(final)
	}
}
