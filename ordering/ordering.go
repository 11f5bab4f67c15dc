package ordering

import "cmp"

// Ordering is the outcome of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Reverse swaps Less and Greater. Equal is unchanged.
func (o Ordering) Reverse() Ordering { return -o }

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Greater:
		return "Greater"
	default:
		return "Equal"
	}
}

// Of normalizes an int comparison result (negative, zero, positive).
func Of(n int) Ordering {
	switch {
	case n < 0:
		return Less
	case n > 0:
		return Greater
	default:
		return Equal
	}
}

// Comparator orders two values of T.
type Comparator[T any] func(a, b T) Ordering

// Compare calls the comparator.
func (c Comparator[T]) Compare(a, b T) Ordering { return c(a, b) }

// Func adapts the comparator to the int convention used by package slices.
func (c Comparator[T]) Func() func(a, b T) int {
	return func(a, b T) int { return int(c(a, b)) }
}

// Reversed returns the comparator with Less and Greater swapped.
func (c Comparator[T]) Reversed() Comparator[T] { return Reversed(c) }

// Then returns a comparator that consults next only when c reports Equal.
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] { return ThenBy(c, next) }

// Natural orders values by their built-in ordering.
func Natural[T cmp.Ordered]() Comparator[T] {
	return func(a, b T) Ordering { return Of(cmp.Compare(a, b)) }
}

// By orders values by the natural ordering of an extracted key.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) Ordering { return Of(cmp.Compare(key(a), key(b))) }
}

// ByWith orders values by an extracted key using keyCmp.
func ByWith[T, K any](key func(T) K, keyCmp Comparator[K]) Comparator[T] {
	return func(a, b T) Ordering { return keyCmp(key(a), key(b)) }
}

// FromInt adapts a difference-style function (negative, zero, positive).
//
//	ordering.FromInt(Person.AgeDifference)
func FromInt[T any](fn func(a, b T) int) Comparator[T] {
	return func(a, b T) Ordering { return Of(fn(a, b)) }
}

// Reversed returns c with Less and Greater swapped.
func Reversed[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) Ordering { return c(a, b).Reverse() }
}

// ThenBy returns the first non-Equal outcome of primary and secondary.
// secondary is not evaluated when primary decides.
func ThenBy[T any](primary, secondary Comparator[T]) Comparator[T] {
	return func(a, b T) Ordering {
		if o := primary(a, b); o != Equal {
			return o
		}
		return secondary(a, b)
	}
}

// ThenByKey is ThenBy with a secondary ordering on an extracted key.
func ThenByKey[T any, K cmp.Ordered](primary Comparator[T], key func(T) K) Comparator[T] {
	return ThenBy(primary, By(key))
}

// MaxBy returns a binary operator yielding the greater of two values.
// Ties keep the first argument.
func MaxBy[T any](c Comparator[T]) func(a, b T) T {
	return func(a, b T) T {
		if c(a, b) == Less {
			return b
		}
		return a
	}
}

// MinBy returns a binary operator yielding the lesser of two values.
// Ties keep the first argument.
func MinBy[T any](c Comparator[T]) func(a, b T) T {
	return func(a, b T) T {
		if c(a, b) == Greater {
			return b
		}
		return a
	}
}
