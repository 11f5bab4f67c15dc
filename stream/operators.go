package stream

import (
	"context"

	"github.com/kbukum/seqkit/optional"
	"github.com/kbukum/seqkit/ordering"
)

// Filter keeps only values that satisfy the predicate.
func (s *Stream[T]) Filter(predicate func(T) bool) *Stream[T] {
	return extend[T](s, stage{
		kind: stageFilter,
		test: func(v any) bool { return predicate(as[T](v)) },
	})
}

// Peek calls fn for each value as it passes, then forwards it unchanged.
func (s *Stream[T]) Peek(fn func(T)) *Stream[T] {
	return extend[T](s, stage{
		kind:  stagePeek,
		visit: func(v any) { fn(as[T](v)) },
	})
}

// Limit truncates the stream to at most n values. Upstream is not pulled
// once n values have been produced. A negative n fails the terminal with
// INVALID_ARGUMENT.
func (s *Stream[T]) Limit(n int) *Stream[T] {
	return reroot[T](s, func(src Iterator[any]) Iterator[any] {
		return &limitIter{src: src, remaining: n}
	})
}

// Skip discards the first n values.
func (s *Stream[T]) Skip(n int) *Stream[T] {
	return reroot[T](s, func(src Iterator[any]) Iterator[any] {
		return &skipIter{src: src, pending: n}
	})
}

// Sorted orders the stream with cmp, keeping equal values in encounter order.
//
// Sorted is the one operator that is not lazy past its position: the first
// downstream pull consumes the entire upstream before anything is yielded.
// It must not be applied to an unbounded stream.
func (s *Stream[T]) Sorted(cmp ordering.Comparator[T]) *Stream[T] {
	less := func(a, b any) int { return int(cmp(as[T](a), as[T](b))) }
	return reroot[T](s, func(src Iterator[any]) Iterator[any] {
		return &sortedIter{src: src, cmp: less}
	})
}

// Map transforms each value using fn.
func Map[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	return extend[U](s, stage{
		kind:  stageMap,
		apply: func(v any) any { return fn(as[T](v)) },
	})
}

// TryMap transforms each value using a function that may fail. The first
// error aborts the terminal operation and is returned as is.
func TryMap[T, U any](s *Stream[T], fn func(T) (U, error)) *Stream[U] {
	return extend[U](s, stage{
		kind: stageTryMap,
		tryApply: func(v any) (any, error) {
			out, err := fn(as[T](v))
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	})
}

// FlatMap replaces each value with the elements of the stream fn returns,
// in source order. A nil or empty inner stream contributes nothing.
func FlatMap[T, U any](s *Stream[T], fn func(T) *Stream[U]) *Stream[U] {
	return extend[U](s, stage{
		kind: stageFlatMap,
		expand: func(ctx context.Context, v any) Iterator[any] {
			inner := fn(as[T](v))
			if inner == nil {
				return emptyIter{}
			}
			return inner.cursor(ctx)
		},
	})
}

// FlatMapSlice replaces each value with the elements of the slice fn returns.
func FlatMapSlice[T, U any](s *Stream[T], fn func(T) []U) *Stream[U] {
	return extend[U](s, stage{
		kind: stageFlatMap,
		expand: func(_ context.Context, v any) Iterator[any] {
			return &erasedIter[U]{src: &sliceIter[U]{items: fn(as[T](v))}}
		},
	})
}

// FlatMapOptional replaces each value with the content of the Optional fn
// returns. Empty results are dropped.
func FlatMapOptional[T, U any](s *Stream[T], fn func(T) optional.Optional[U]) *Stream[U] {
	return FlatMap(s, func(v T) *Stream[U] { return FromOptional(fn(v)) })
}

// Distinct drops values equal to one already produced. The set of seen
// values lives for one terminal run.
func Distinct[T comparable](s *Stream[T]) *Stream[T] {
	return reroot[T](s, func(src Iterator[any]) Iterator[any] {
		seen := make(map[T]struct{})
		return &cursor{
			name:    s.name,
			source:  src,
			derived: true,
			stages: []stage{{
				kind: stageFilter,
				test: func(v any) bool {
					key := as[T](v)
					if _, dup := seen[key]; dup {
						return false
					}
					seen[key] = struct{}{}
					return true
				},
			}},
		}
	})
}

// Wrap decorates the iterator of s's whole pipeline on every run, for
// instrumentation or custom buffering. Errors keep their classification.
func Wrap[T any](s *Stream[T], wrap func(Iterator[T]) Iterator[T]) *Stream[T] {
	return reroot[T](s, func(src Iterator[any]) Iterator[any] {
		return erase(wrap(&typedIter[T]{src: src}))
	})
}
