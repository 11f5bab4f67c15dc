package stream

import (
	"context"
	"iter"

	"github.com/kbukum/seqkit/optional"
)

// --- Constructors ---

// From creates a stream over an existing Iterator. The iterator is consumed
// by the first terminal operation; later terminals see it exhausted.
func From[T any](it Iterator[T]) *Stream[T] {
	return &Stream[T]{
		name: "iterator",
		open: func(_ context.Context) Iterator[any] {
			return erase(it)
		},
	}
}

// FromFunc creates a stream from a factory that produces an Iterator. The
// factory runs once per terminal operation, so the stream is restartable
// when the factory is.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Stream[T] {
	return &Stream[T]{
		name: "func",
		open: func(ctx context.Context) Iterator[any] {
			return erase(fn(ctx))
		},
	}
}

// FromSlice creates a restartable stream over items.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{
		name: "slice",
		open: func(_ context.Context) Iterator[any] {
			return &erasedIter[T]{src: &sliceIter[T]{items: items}}
		},
	}
}

// Of creates a stream over the given values.
func Of[T any](values ...T) *Stream[T] {
	return FromSlice(values)
}

// Empty creates a stream with no elements.
func Empty[T any]() *Stream[T] {
	return &Stream[T]{
		name: "empty",
		open: func(_ context.Context) Iterator[any] { return emptyIter{} },
	}
}

// FromOptional creates a stream of zero or one element.
func FromOptional[T any](o optional.Optional[T]) *Stream[T] {
	if v, ok := o.Get(); ok {
		return Of(v)
	}
	return Empty[T]()
}

// FromSeq creates a stream over a range-over-func sequence. Each terminal
// operation starts a fresh iteration of seq.
func FromSeq[T any](seq iter.Seq[T]) *Stream[T] {
	return &Stream[T]{
		name: "seq",
		open: func(_ context.Context) Iterator[any] {
			return &erasedIter[T]{src: newPullIter(seq)}
		},
	}
}

// Generate creates an infinite stream whose elements are produced by fn.
// Bound it with Limit or a short-circuiting terminal.
func Generate[T any](fn func() T) *Stream[T] {
	return &Stream[T]{
		name: "generate",
		open: func(_ context.Context) Iterator[any] {
			return &erasedIter[T]{src: &funcIter[T]{next: func() (T, bool) { return fn(), true }}}
		},
	}
}

// Iterate creates the infinite stream seed, fn(seed), fn(fn(seed)), ...
func Iterate[T any](seed T, fn func(T) T) *Stream[T] {
	return &Stream[T]{
		name: "iterate",
		open: func(_ context.Context) Iterator[any] {
			cur, started := seed, false
			return &erasedIter[T]{src: &funcIter[T]{next: func() (T, bool) {
				if started {
					cur = fn(cur)
				}
				started = true
				return cur, true
			}}}
		},
	}
}

// Runes creates a stream of the runes of s, decoded lazily.
func Runes(s string) *Stream[rune] {
	return &Stream[rune]{
		name: "runes",
		open: func(_ context.Context) Iterator[any] {
			return &erasedIter[rune]{src: &runeIter{s: s}}
		},
	}
}

// Concat joins streams end to end. Each stream is opened only when the
// previous one is exhausted.
func Concat[T any](streams ...*Stream[T]) *Stream[T] {
	opens := make([]func(ctx context.Context) Iterator[any], len(streams))
	for i, s := range streams {
		opens[i] = func(ctx context.Context) Iterator[any] { return s.cursor(ctx) }
	}
	return &Stream[T]{
		name:    "concat",
		derived: true,
		open: func(_ context.Context) Iterator[any] {
			return &concatIter{ctxOpen: opens}
		},
	}
}
