// Package collector implements the mutable-reduction protocol used by
// stream.Collect.
//
// A Collector describes how to fold a sequence into a result with four
// operations:
//
//   - Create returns a fresh accumulator.
//   - Accumulate folds one element into an accumulator.
//   - Combine merges two accumulators built from adjacent partitions.
//   - Finish turns the final accumulator into the result.
//
// Combine must be associative and Combine(Create(), a) must equal a. Under
// those two laws a sequence can be split into disjoint partitions, each
// reduced independently, and the partial accumulators merged in partition
// order with the same logical result as a sequential fold. ApplyPartitions
// is the single-threaded reference of that execution model.
//
// Collectors compose: GroupingByTo runs a downstream collector per key,
// Mapping and Filtering adapt a downstream collector to another element
// type or subset.
//
//	byAge := collector.GroupingByTo(
//	    func(p Person) int { return p.Age },
//	    collector.Mapping(func(p Person) string { return p.Name }, collector.ToList[string]()),
//	)
//	names, err := stream.Collect(ctx, people, byAge)
package collector
