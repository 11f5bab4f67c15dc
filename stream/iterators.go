package stream

import (
	"context"
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/kbukum/seqkit/errors"
)

// typedIter restores the element type on top of an erased iterator.
type typedIter[T any] struct {
	src Iterator[any]
}

func (it *typedIter[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := it.src.Next(ctx)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return as[T](v), true, nil
}

func (it *typedIter[T]) Close() error { return it.src.Close() }

// erasedIter hides the element type of a source so the cursor can drive it.
type erasedIter[T any] struct {
	src Iterator[T]
}

func (it *erasedIter[T]) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.src.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

func (it *erasedIter[T]) Close() error { return it.src.Close() }

func erase[T any](it Iterator[T]) Iterator[any] {
	if typed, ok := it.(*typedIter[T]); ok {
		return typed.src
	}
	return &erasedIter[T]{src: it}
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type funcIter[T any] struct {
	next func() (T, bool)
}

func (it *funcIter[T]) Next(_ context.Context) (T, bool, error) {
	v, ok := it.next()
	return v, ok, nil
}

func (it *funcIter[T]) Close() error { return nil }

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next(_ context.Context) (T, bool, error) {
	v, ok := it.next()
	return v, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.stop()
	return nil
}

func newPullIter[T any](seq iter.Seq[T]) *pullIter[T] {
	next, stop := iter.Pull(seq)
	return &pullIter[T]{next: next, stop: stop}
}

type runeIter struct {
	s string
}

func (it *runeIter) Next(_ context.Context) (rune, bool, error) {
	if len(it.s) == 0 {
		return 0, false, nil
	}
	r, size := utf8.DecodeRuneInString(it.s)
	it.s = it.s[size:]
	return r, true, nil
}

func (it *runeIter) Close() error { return nil }

type limitIter struct {
	src       Iterator[any]
	remaining int
}

func (it *limitIter) Next(ctx context.Context) (any, bool, error) {
	if it.remaining < 0 {
		return nil, false, errors.InvalidArgument("n", "limit must not be negative")
	}
	if it.remaining == 0 {
		return nil, false, nil
	}
	v, ok, err := it.src.Next(ctx)
	if ok {
		it.remaining--
	}
	return v, ok, err
}

func (it *limitIter) Close() error { return it.src.Close() }

type skipIter struct {
	src     Iterator[any]
	pending int
}

func (it *skipIter) Next(ctx context.Context) (any, bool, error) {
	if it.pending < 0 {
		return nil, false, errors.InvalidArgument("n", "skip must not be negative")
	}
	for it.pending > 0 {
		_, ok, err := it.src.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		it.pending--
	}
	return it.src.Next(ctx)
}

func (it *skipIter) Close() error { return it.src.Close() }

// sortedIter drains its source on the first pull.
type sortedIter struct {
	src    Iterator[any]
	cmp    func(a, b any) int
	buf    []any
	index  int
	loaded bool
}

func (it *sortedIter) Next(ctx context.Context) (any, bool, error) {
	if !it.loaded {
		for {
			v, ok, err := it.src.Next(ctx)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				break
			}
			it.buf = append(it.buf, v)
		}
		slices.SortStableFunc(it.buf, it.cmp)
		it.loaded = true
	}
	if it.index >= len(it.buf) {
		return nil, false, nil
	}
	v := it.buf[it.index]
	it.buf[it.index] = nil
	it.index++
	return v, true, nil
}

func (it *sortedIter) Close() error { return it.src.Close() }

type concatIter struct {
	ctxOpen []func(ctx context.Context) Iterator[any]
	current Iterator[any]
	index   int
}

func (it *concatIter) Next(ctx context.Context) (any, bool, error) {
	for {
		if it.current == nil {
			if it.index >= len(it.ctxOpen) {
				return nil, false, nil
			}
			it.current = it.ctxOpen[it.index](ctx)
			it.index++
		}
		v, ok, err := it.current.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
		err = it.current.Close()
		it.current = nil
		if err != nil {
			return nil, false, err
		}
	}
}

func (it *concatIter) Close() error {
	if it.current == nil {
		return nil
	}
	err := it.current.Close()
	it.current = nil
	return err
}

type emptyIter struct{}

func (emptyIter) Next(context.Context) (any, bool, error) { return nil, false, nil }
func (emptyIter) Close() error                            { return nil }
