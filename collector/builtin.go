package collector

import (
	"strings"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/optional"
	"github.com/kbukum/seqkit/ordering"
)

// Number is the set of element types Summing and Averaging accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ToList collects elements into a slice in encounter order.
func ToList[T any]() Collector[T, []T, []T] {
	return OfIdentity(
		func() []T { return make([]T, 0) },
		func(acc []T, v T) []T { return append(acc, v) },
		func(l, r []T) []T { return append(l, r...) },
	)
}

// ToSet collects distinct elements.
func ToSet[T comparable]() Collector[T, map[T]struct{}, map[T]struct{}] {
	return OfIdentity(
		func() map[T]struct{} { return make(map[T]struct{}) },
		func(acc map[T]struct{}, v T) map[T]struct{} {
			acc[v] = struct{}{}
			return acc
		},
		func(l, r map[T]struct{}) map[T]struct{} {
			for k := range r {
				l[k] = struct{}{}
			}
			return l
		},
	)
}

// ToMap collects elements into a map. Two elements producing the same key
// fail the collection with a KEY_COLLISION error; use ToMapMerge to resolve
// duplicates instead.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V) Collector[T, map[K]V, map[K]V] {
	put := func(m map[K]V, k K, v V) error {
		if _, exists := m[k]; exists {
			return errors.KeyCollision(k)
		}
		m[k] = v
		return nil
	}
	return New(
		func() map[K]V { return make(map[K]V) },
		func(acc map[K]V, v T) (map[K]V, error) {
			return acc, put(acc, key(v), value(v))
		},
		func(l, r map[K]V) (map[K]V, error) {
			for k, v := range r {
				if err := put(l, k, v); err != nil {
					return l, err
				}
			}
			return l, nil
		},
		identity[map[K]V],
	)
}

// ToMapMerge collects elements into a map, resolving duplicate keys with
// merge(existing, incoming).
func ToMapMerge[T any, K comparable, V any](key func(T) K, value func(T) V, merge func(V, V) V) Collector[T, map[K]V, map[K]V] {
	put := func(m map[K]V, k K, v V) {
		if old, exists := m[k]; exists {
			v = merge(old, v)
		}
		m[k] = v
	}
	return OfIdentity(
		func() map[K]V { return make(map[K]V) },
		func(acc map[K]V, v T) map[K]V {
			put(acc, key(v), value(v))
			return acc
		},
		func(l, r map[K]V) map[K]V {
			for k, v := range r {
				put(l, k, v)
			}
			return l
		},
	)
}

// Joining concatenates string-like elements separated by delimiter.
func Joining[S ~string](delimiter string) Collector[S, []string, string] {
	return JoiningWith[S](delimiter, "", "")
}

// JoiningWith concatenates string-like elements separated by delimiter and
// surrounded by prefix and suffix. No elements yields prefix+suffix.
// Element order is the encounter order of a sequential run, or the
// partition order under ApplyPartitions.
func JoiningWith[S ~string](delimiter, prefix, suffix string) Collector[S, []string, string] {
	return Of(
		func() []string { return make([]string, 0) },
		func(acc []string, v S) []string { return append(acc, string(v)) },
		func(l, r []string) []string { return append(l, r...) },
		func(acc []string) string { return prefix + strings.Join(acc, delimiter) + suffix },
	)
}

// Counting counts elements.
func Counting[T any]() Collector[T, int, int] {
	return OfIdentity(
		func() int { return 0 },
		func(acc int, _ T) int { return acc + 1 },
		func(l, r int) int { return l + r },
	)
}

// Summing adds up the numbers extracted from each element.
func Summing[T any, N Number](fn func(T) N) Collector[T, N, N] {
	return OfIdentity(
		func() N { return 0 },
		func(acc N, v T) N { return acc + fn(v) },
		func(l, r N) N { return l + r },
	)
}

type mean struct {
	sum   float64
	count int
}

// Averaging computes the arithmetic mean of the numbers extracted from each
// element. An empty input has no mean.
func Averaging[T any, N Number](fn func(T) N) Collector[T, mean, optional.Optional[float64]] {
	return Of(
		func() mean { return mean{} },
		func(acc mean, v T) mean { return mean{sum: acc.sum + float64(fn(v)), count: acc.count + 1} },
		func(l, r mean) mean { return mean{sum: l.sum + r.sum, count: l.count + r.count} },
		func(acc mean) optional.Optional[float64] {
			if acc.count == 0 {
				return optional.Empty[float64]()
			}
			return optional.Of(acc.sum / float64(acc.count))
		},
	)
}

// Mapping adapts downstream to accept T by applying fn before accumulation.
func Mapping[T, U, A, R any](fn func(T) U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return New(
		downstream.Create,
		func(acc A, v T) (A, error) { return downstream.Accumulate(acc, fn(v)) },
		downstream.Combine,
		downstream.Finish,
	)
}

// Filtering passes to downstream only elements satisfying predicate.
func Filtering[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, A, R] {
	return New(
		downstream.Create,
		func(acc A, v T) (A, error) {
			if !predicate(v) {
				return acc, nil
			}
			return downstream.Accumulate(acc, v)
		},
		downstream.Combine,
		downstream.Finish,
	)
}

// Reducing folds elements with op. No elements yields an empty Optional.
func Reducing[T any](op func(T, T) T) Collector[T, optional.Optional[T], optional.Optional[T]] {
	return OfIdentity(
		optional.Empty[T],
		func(acc optional.Optional[T], v T) optional.Optional[T] {
			if cur, ok := acc.Get(); ok {
				return optional.Of(op(cur, v))
			}
			return optional.Of(v)
		},
		func(l, r optional.Optional[T]) optional.Optional[T] {
			lv, lok := l.Get()
			rv, rok := r.Get()
			switch {
			case !lok:
				return r
			case !rok:
				return l
			default:
				return optional.Of(op(lv, rv))
			}
		},
	)
}

// ReducingSeed folds elements with op starting from seed. seed must be an
// identity of op (op(seed, x) == x) for partitioned runs to agree with
// sequential ones.
func ReducingSeed[T any](seed T, op func(T, T) T) Collector[T, T, T] {
	return ReducingMapped(seed, identity[T], op)
}

// ReducingMapped maps each element with mapper and folds the results with op
// starting from seed.
func ReducingMapped[T, U any](seed U, mapper func(T) U, op func(U, U) U) Collector[T, U, U] {
	return OfIdentity(
		func() U { return seed },
		func(acc U, v T) U { return op(acc, mapper(v)) },
		op,
	)
}

// MaxBy selects the greatest element according to c.
func MaxBy[T any](c ordering.Comparator[T]) Collector[T, optional.Optional[T], optional.Optional[T]] {
	return Reducing(ordering.MaxBy(c))
}

// MinBy selects the least element according to c.
func MinBy[T any](c ordering.Comparator[T]) Collector[T, optional.Optional[T], optional.Optional[T]] {
	return Reducing(ordering.MinBy(c))
}
