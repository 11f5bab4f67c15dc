package collector

// GroupingBy partitions elements by classifier into lists. Elements within
// each group keep their encounter order; the map itself is unordered.
func GroupingBy[T any, K comparable](classifier func(T) K) Collector[T, map[K][]T, map[K][]T] {
	return GroupingByTo(classifier, ToList[T]())
}

// GroupingByTo partitions elements by classifier and reduces each group with
// downstream. Nesting another GroupingByTo as downstream gives multi-level
// grouping.
func GroupingByTo[T any, K comparable, A, R any](classifier func(T) K, downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	return New(
		func() map[K]A { return make(map[K]A) },
		func(acc map[K]A, v T) (map[K]A, error) {
			k := classifier(v)
			group, ok := acc[k]
			if !ok {
				group = downstream.Create()
			}
			group, err := downstream.Accumulate(group, v)
			if err != nil {
				return acc, err
			}
			acc[k] = group
			return acc, nil
		},
		func(l, r map[K]A) (map[K]A, error) {
			for k, rg := range r {
				lg, ok := l[k]
				if !ok {
					l[k] = rg
					continue
				}
				merged, err := downstream.Combine(lg, rg)
				if err != nil {
					return l, err
				}
				l[k] = merged
			}
			return l, nil
		},
		func(acc map[K]A) map[K]R {
			out := make(map[K]R, len(acc))
			for k, group := range acc {
				out[k] = downstream.Finish(group)
			}
			return out
		},
	)
}

// PartitioningBy splits elements into the true and false groups of
// predicate. Both keys are always present in the result.
func PartitioningBy[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, map[bool]A, map[bool]R] {
	grouped := GroupingByTo(predicate, downstream)
	return New(
		grouped.Create,
		grouped.Accumulate,
		grouped.Combine,
		func(acc map[bool]A) map[bool]R {
			out := grouped.Finish(acc)
			for _, k := range []bool{true, false} {
				if _, ok := out[k]; !ok {
					out[k] = downstream.Finish(downstream.Create())
				}
			}
			return out
		},
	)
}
