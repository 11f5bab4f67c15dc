package stream

import (
	"context"

	"github.com/kbukum/seqkit/errors"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Stream is a lazy sequence of T. No work happens until a terminal
// operation pulls values.
type Stream[T any] struct {
	name string
	open func(ctx context.Context) Iterator[any]
	// derived is set when the source is itself an upstream cursor whose
	// errors are already classified.
	derived bool
	stages  []stage
}

type stageKind uint8

const (
	stageFilter stageKind = iota
	stageMap
	stageTryMap
	stageFlatMap
	stagePeek
)

type stage struct {
	kind     stageKind
	test     func(any) bool
	apply    func(any) any
	tryApply func(any) (any, error)
	expand   func(context.Context, any) Iterator[any]
	visit    func(any)
}

// Named labels the stream's source in SOURCE_FAILURE errors.
func (s *Stream[T]) Named(name string) *Stream[T] {
	return &Stream[T]{name: name, open: s.open, derived: s.derived, stages: s.stages}
}

// Iter opens the pipeline and returns its raw Iterator. The caller must Close() it.
func (s *Stream[T]) Iter(ctx context.Context) Iterator[T] {
	return &typedIter[T]{src: s.cursor(ctx)}
}

func (s *Stream[T]) cursor(ctx context.Context) *cursor {
	return &cursor{
		name:    s.name,
		source:  s.open(ctx),
		derived: s.derived,
		stages:  s.stages,
	}
}

// extend returns a stream of U sharing s's source with st appended to a
// copy of its stage list.
func extend[U, T any](s *Stream[T], st stage) *Stream[U] {
	stages := make([]stage, len(s.stages), len(s.stages)+1)
	copy(stages, s.stages)
	return &Stream[U]{
		name:    s.name,
		open:    s.open,
		derived: s.derived,
		stages:  append(stages, st),
	}
}

// reroot returns a stream of U whose source is s's full pipeline wrapped by wrap.
// wrap is called once per opening, so per-run state belongs inside it.
func reroot[U, T any](s *Stream[T], wrap func(Iterator[any]) Iterator[any]) *Stream[U] {
	return &Stream[U]{
		name:    s.name,
		derived: true,
		open: func(ctx context.Context) Iterator[any] {
			return wrap(s.cursor(ctx))
		},
	}
}

// --- Cursor ---

// frame is an active flat-map expansion. next is the index of the first
// stage its values still have to pass.
type frame struct {
	it   Iterator[any]
	next int
}

// cursor interprets a stage list over a source, one upstream pull per
// downstream element.
type cursor struct {
	name    string
	source  Iterator[any]
	derived bool
	stages  []stage
	frames  []frame
	done    bool
}

func (c *cursor) Next(ctx context.Context) (any, bool, error) {
	for {
		var (
			v    any
			from int
		)
		if n := len(c.frames); n > 0 {
			top := c.frames[n-1]
			val, ok, err := top.it.Next(ctx)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				c.frames = c.frames[:n-1]
				if err := top.it.Close(); err != nil {
					return nil, false, sourceFailure(c.name, err)
				}
				continue
			}
			v, from = val, top.next
		} else {
			if c.done {
				return nil, false, nil
			}
			if err := ctx.Err(); err != nil {
				return nil, false, sourceFailure(c.name, err)
			}
			val, ok, err := c.source.Next(ctx)
			if err != nil {
				if c.derived {
					return nil, false, err
				}
				return nil, false, sourceFailure(c.name, err)
			}
			if !ok {
				c.done = true
				return nil, false, nil
			}
			v = val
		}

		out, ok, err := c.run(ctx, v, from)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return out, true, nil
		}
	}
}

// run passes v through stages[from:]. It reports false when v was dropped
// by a filter or handed to a new flat-map frame.
func (c *cursor) run(ctx context.Context, v any, from int) (any, bool, error) {
	for i := from; i < len(c.stages); i++ {
		st := c.stages[i]
		switch st.kind {
		case stageFilter:
			if !st.test(v) {
				return nil, false, nil
			}
		case stageMap:
			v = st.apply(v)
		case stageTryMap:
			var err error
			if v, err = st.tryApply(v); err != nil {
				return nil, false, err
			}
		case stagePeek:
			st.visit(v)
		case stageFlatMap:
			c.frames = append(c.frames, frame{it: st.expand(ctx, v), next: i + 1})
			return nil, false, nil
		}
	}
	return v, true, nil
}

func (c *cursor) Close() error {
	var firstErr error
	for i := len(c.frames) - 1; i >= 0; i-- {
		if err := c.frames[i].it.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.frames = nil
	if err := c.source.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// sourceFailure wraps a foreign source error. AppErrors keep their own code.
func sourceFailure(name string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.SourceFailure(name, err)
}

// as converts an erased value back to T. A nil interface yields T's zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
