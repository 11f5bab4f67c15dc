package collector

// Collector folds elements of type T into an accumulator of type A and
// finishes it into a result of type R.
type Collector[T, A, R any] interface {
	// Create returns a fresh, unshared accumulator.
	Create() A
	// Accumulate folds v into acc and returns the updated accumulator.
	Accumulate(acc A, v T) (A, error)
	// Combine merges right into left. Must be associative.
	Combine(left, right A) (A, error)
	// Finish converts the accumulator into the result.
	Finish(acc A) R
}

type funcCollector[T, A, R any] struct {
	create     func() A
	accumulate func(A, T) (A, error)
	combine    func(A, A) (A, error)
	finish     func(A) R
}

func (c *funcCollector[T, A, R]) Create() A                        { return c.create() }
func (c *funcCollector[T, A, R]) Accumulate(acc A, v T) (A, error) { return c.accumulate(acc, v) }
func (c *funcCollector[T, A, R]) Combine(l, r A) (A, error)        { return c.combine(l, r) }
func (c *funcCollector[T, A, R]) Finish(acc A) R                   { return c.finish(acc) }

// New builds a Collector from fallible accumulate and combine functions.
func New[T, A, R any](
	create func() A,
	accumulate func(A, T) (A, error),
	combine func(A, A) (A, error),
	finish func(A) R,
) Collector[T, A, R] {
	return &funcCollector[T, A, R]{
		create:     create,
		accumulate: accumulate,
		combine:    combine,
		finish:     finish,
	}
}

// Of builds a Collector from functions that cannot fail.
func Of[T, A, R any](
	create func() A,
	accumulate func(A, T) A,
	combine func(A, A) A,
	finish func(A) R,
) Collector[T, A, R] {
	return New(
		create,
		func(acc A, v T) (A, error) { return accumulate(acc, v), nil },
		func(l, r A) (A, error) { return combine(l, r), nil },
		finish,
	)
}

// OfIdentity is Of with an identity finish step.
//
//	collector.OfIdentity(
//	    func() []Student { return nil },
//	    func(acc []Student, s Student) []Student { return append(acc, s) },
//	    func(l, r []Student) []Student { return append(l, r...) },
//	)
func OfIdentity[T, A any](
	create func() A,
	accumulate func(A, T) A,
	combine func(A, A) A,
) Collector[T, A, A] {
	return Of(create, accumulate, combine, identity[A])
}

// CollectingAndThen applies fn to the result of c.
func CollectingAndThen[T, A, R, RR any](c Collector[T, A, R], fn func(R) RR) Collector[T, A, RR] {
	return New(
		c.Create,
		c.Accumulate,
		c.Combine,
		func(acc A) RR { return fn(c.Finish(acc)) },
	)
}

// Apply folds values in order with c.
func Apply[T, A, R any](c Collector[T, A, R], values []T) (R, error) {
	acc, err := accumulateAll(c, c.Create(), values)
	if err != nil {
		var zero R
		return zero, err
	}
	return c.Finish(acc), nil
}

// ApplyPartitions reduces each partition into its own accumulator and then
// merges the partial accumulators left to right with Combine. For a lawful
// collector the result equals Apply over the concatenated partitions.
func ApplyPartitions[T, A, R any](c Collector[T, A, R], partitions ...[]T) (R, error) {
	var zero R
	partials := make([]A, 0, len(partitions))
	for _, part := range partitions {
		acc, err := accumulateAll(c, c.Create(), part)
		if err != nil {
			return zero, err
		}
		partials = append(partials, acc)
	}

	merged := c.Create()
	for _, acc := range partials {
		var err error
		if merged, err = c.Combine(merged, acc); err != nil {
			return zero, err
		}
	}
	return c.Finish(merged), nil
}

func accumulateAll[T, A, R any](c Collector[T, A, R], acc A, values []T) (A, error) {
	for _, v := range values {
		var err error
		if acc, err = c.Accumulate(acc, v); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

func identity[A any](a A) A { return a }
