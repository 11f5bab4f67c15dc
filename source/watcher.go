package source

import (
	"context"
	stderrors "errors"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/stream"
)

// Event is one file-system change seen by a Watcher.
type Event struct {
	Path string
	Name string
	Op   fsnotify.Op
	// BatchID is set on events returned together by Poll.
	BatchID string
}

type watchOptions struct {
	ops fsnotify.Op
	log *logger.Logger
}

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

// WithOps restricts the watcher to the given operations. Without it every
// operation is reported.
func WithOps(ops ...fsnotify.Op) WatchOption {
	return func(o *watchOptions) {
		for _, op := range ops {
			o.ops |= op
		}
	}
}

// WithLogger sets the logger used for watcher lifecycle messages.
func WithLogger(l *logger.Logger) WatchOption {
	return func(o *watchOptions) { o.log = l }
}

// Watcher produces change events for watched paths. Events keep queueing
// between calls, so a caller can poll repeatedly without losing changes
// unless the underlying queue overflows.
type Watcher struct {
	name   string
	events <-chan fsnotify.Event
	errs   <-chan error
	closer io.Closer
	ops    fsnotify.Op
	log    *logger.Logger

	closeOnce sync.Once
	closeErr  error
}

// Watch starts watching the given paths. Directories report changes to
// their direct children.
func Watch(path string, opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.SourceFailure(path, err)
	}
	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return nil, errors.SourceFailure(path, err)
	}
	w := newWatcher(path, fw.Events, fw.Errors, fw, opts...)
	w.log.Info("watching", logger.Fields(logger.FieldPath, path, logger.FieldOp, w.opsLabel()))
	return w, nil
}

func newWatcher(name string, events <-chan fsnotify.Event, errs <-chan error, closer io.Closer, opts ...WatchOption) *Watcher {
	o := watchOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("source")
	}
	return &Watcher{
		name:   name,
		events: events,
		errs:   errs,
		closer: closer,
		ops:    o.ops,
		log:    o.log.WithStream(name),
	}
}

// Next blocks until an event arrives, ctx is done, or the watcher is closed.
func (w *Watcher) Next(ctx context.Context) (Event, bool, error) {
	return w.next(ctx, nil)
}

// NextWithin is Next bounded by timeout. An expired timeout ends the
// sequence without an error.
func (w *Watcher) NextWithin(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return w.next(ctx, timer.C)
}

func (w *Watcher) next(ctx context.Context, deadline <-chan time.Time) (Event, bool, error) {
	for {
		select {
		case <-ctx.Done():
			return Event{}, false, errors.SourceFailure(w.name, ctx.Err())
		case <-deadline:
			return Event{}, false, nil
		case ev, ok := <-w.events:
			if !ok {
				return Event{}, false, nil
			}
			if w.accept(ev) {
				return toEvent(ev), true, nil
			}
		case err, ok := <-w.errs:
			if !ok {
				w.errs = nil
				continue
			}
			return Event{}, false, w.failure(err)
		}
	}
}

// Poll waits up to timeout for a change, then drains every event already
// queued. All events in the batch share a BatchID. An empty batch means
// nothing changed in time.
func (w *Watcher) Poll(ctx context.Context, timeout time.Duration) ([]Event, error) {
	first, ok, err := w.NextWithin(ctx, timeout)
	if err != nil || !ok {
		return nil, err
	}
	batch := []Event{first}
drain:
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				break drain
			}
			if w.accept(ev) {
				batch = append(batch, toEvent(ev))
			}
		case err, ok := <-w.errs:
			if !ok {
				w.errs = nil
				continue
			}
			w.stamp(batch)
			return batch, w.failure(err)
		default:
			break drain
		}
	}

	w.stamp(batch)
	return batch, nil
}

func (w *Watcher) stamp(batch []Event) {
	id := uuid.NewString()
	for i := range batch {
		batch[i].BatchID = id
	}
	w.log.Debug("batch drained", logger.Fields(logger.FieldBatchID, id, logger.FieldCount, len(batch)))
}

// Stream exposes the watcher as a stream that ends once no event arrives
// for quiet. Closing the stream's iterator leaves the watcher open.
func (w *Watcher) Stream(quiet time.Duration) *stream.Stream[Event] {
	return stream.FromFunc(func(context.Context) stream.Iterator[Event] {
		return &quietIter{w: w, quiet: quiet}
	}).Named(w.name)
}

// Close stops the watcher. Later pulls report end of sequence.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.closer.Close()
		w.log.Debug("watcher closed")
	})
	return w.closeErr
}

func (w *Watcher) accept(ev fsnotify.Event) bool {
	return w.ops == 0 || ev.Op&w.ops != 0
}

func (w *Watcher) failure(err error) error {
	if stderrors.Is(err, fsnotify.ErrEventOverflow) {
		w.log.Warn("event queue overflowed, changes were dropped", logger.ErrorFields(w.name, err))
		return errors.SourceFailure(w.name, err).WithDetail("overflow", true)
	}
	w.log.Error("watch failed", logger.ErrorFields(w.name, err))
	return errors.SourceFailure(w.name, err)
}

func (w *Watcher) opsLabel() string {
	if w.ops == 0 {
		return "all"
	}
	return w.ops.String()
}

func toEvent(ev fsnotify.Event) Event {
	return Event{Path: ev.Name, Name: filepath.Base(ev.Name), Op: ev.Op}
}

type quietIter struct {
	w     *Watcher
	quiet time.Duration
}

func (it *quietIter) Next(ctx context.Context) (Event, bool, error) {
	return it.w.NextWithin(ctx, it.quiet)
}

func (it *quietIter) Close() error { return nil }
