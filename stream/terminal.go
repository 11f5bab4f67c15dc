package stream

import (
	"context"
	"iter"

	"github.com/kbukum/seqkit/collector"
	"github.com/kbukum/seqkit/optional"
	"github.com/kbukum/seqkit/ordering"
)

// --- Terminals ---

// drive opens the pipeline and feeds values to visit until the stream ends,
// visit returns false, or an error occurs. The cursor is always closed; a
// close failure is reported only when the run itself succeeded.
func drive[T any](ctx context.Context, s *Stream[T], visit func(T) (bool, error)) (err error) {
	c := s.cursor(ctx)
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = sourceFailure(s.name, cerr)
		}
	}()
	for {
		v, ok, err := c.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		more, err := visit(as[T](v))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// ToSlice runs the pipeline and returns all values. On error the values
// produced so far are returned alongside it.
func (s *Stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var result []T
	err := drive(ctx, s, func(v T) (bool, error) {
		result = append(result, v)
		return true, nil
	})
	return result, err
}

// ForEach calls fn for every value in encounter order.
func (s *Stream[T]) ForEach(ctx context.Context, fn func(T)) error {
	return drive(ctx, s, func(v T) (bool, error) {
		fn(v)
		return true, nil
	})
}

// Count returns the number of values.
func (s *Stream[T]) Count(ctx context.Context) (int, error) {
	n := 0
	err := drive(ctx, s, func(T) (bool, error) {
		n++
		return true, nil
	})
	return n, err
}

// FindFirst returns the first value, pulling nothing beyond it.
func (s *Stream[T]) FindFirst(ctx context.Context) (optional.Optional[T], error) {
	found := optional.Empty[T]()
	err := drive(ctx, s, func(v T) (bool, error) {
		found = optional.Of(v)
		return false, nil
	})
	if err != nil {
		return optional.Empty[T](), err
	}
	return found, nil
}

// FindAny returns some value of the stream. Under sequential evaluation it
// is the first one.
func (s *Stream[T]) FindAny(ctx context.Context) (optional.Optional[T], error) {
	return s.FindFirst(ctx)
}

// AnyMatch reports whether some value satisfies predicate. It stops at the
// first match.
func (s *Stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	found, err := s.Filter(predicate).FindFirst(ctx)
	return found.IsPresent(), err
}

// AllMatch reports whether every value satisfies predicate. It stops at the
// first counterexample. An empty stream matches.
func (s *Stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	miss, err := s.AnyMatch(ctx, func(v T) bool { return !predicate(v) })
	return !miss && err == nil, err
}

// NoneMatch reports whether no value satisfies predicate.
func (s *Stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	hit, err := s.AnyMatch(ctx, predicate)
	return !hit && err == nil, err
}

// Reduce folds the values left to right with op. An empty stream yields an
// empty Optional.
func (s *Stream[T]) Reduce(ctx context.Context, op func(T, T) T) (optional.Optional[T], error) {
	acc := optional.Empty[T]()
	err := drive(ctx, s, func(v T) (bool, error) {
		if cur, ok := acc.Get(); ok {
			acc = optional.Of(op(cur, v))
		} else {
			acc = optional.Of(v)
		}
		return true, nil
	})
	if err != nil {
		return optional.Empty[T](), err
	}
	return acc, nil
}

// ReduceWith folds the values left to right with op starting from seed.
func (s *Stream[T]) ReduceWith(ctx context.Context, seed T, op func(T, T) T) (T, error) {
	return Fold(ctx, s, seed, op)
}

// Min returns the least value according to cmp. Ties keep the earliest.
func (s *Stream[T]) Min(ctx context.Context, cmp ordering.Comparator[T]) (optional.Optional[T], error) {
	return s.Reduce(ctx, ordering.MinBy(cmp))
}

// Max returns the greatest value according to cmp. Ties keep the earliest.
func (s *Stream[T]) Max(ctx context.Context, cmp ordering.Comparator[T]) (optional.Optional[T], error) {
	return s.Reduce(ctx, ordering.MaxBy(cmp))
}

// All returns the stream as a range-over-func sequence. An error is yielded
// once, with a zero value, and ends the sequence.
//
//	for name, err := range s.All(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(name)
//	}
func (s *Stream[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		err := drive(ctx, s, func(v T) (bool, error) {
			return yield(v, nil), nil
		})
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Fold folds the values left to right into an accumulator of another type.
func Fold[T, R any](ctx context.Context, s *Stream[T], seed R, fn func(R, T) R) (R, error) {
	acc := seed
	err := drive(ctx, s, func(v T) (bool, error) {
		acc = fn(acc, v)
		return true, nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// Collect runs the pipeline into c: one Create, an Accumulate per value in
// encounter order, then Finish.
func Collect[T, A, R any](ctx context.Context, s *Stream[T], c collector.Collector[T, A, R]) (R, error) {
	acc := c.Create()
	err := drive(ctx, s, func(v T) (bool, error) {
		var err error
		acc, err = c.Accumulate(acc, v)
		return err == nil, err
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return c.Finish(acc), nil
}
