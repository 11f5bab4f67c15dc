// Package stream provides lazy, pull-based sequences with composable
// operators and generalized reduction.
//
// A Stream is an immutable description: a source opener plus an ordered list
// of pending stages. Nothing runs until a terminal operation (ToSlice,
// Count, FindFirst, Collect, ...) opens a cursor and pulls. Each operator
// returns a new Stream sharing the source and owning a copy of the stage
// list, so a Stream value can be extended in several directions safely.
//
// The Iterator interface is the source adapter contract, structurally
// identical to the one used by package source, so directory listings and
// file-change events plug straight in.
//
// # Operators
//
// Stages (interpreted by a single pull loop, no per-element recursion):
//
//   - Filter: keep values matching a predicate
//   - Map: transform each value 1:1
//   - TryMap: transform with a function that may fail
//   - FlatMap, FlatMapSlice, FlatMapOptional: expand each value into zero or more values
//   - Peek: observe values without altering them
//
// Re-rooting operators (wrap the upstream pipeline as a new source):
//
//   - Limit, Skip: truncate; Limit stops pulling upstream once satisfied
//   - Distinct: drop repeated comparable values
//   - Sorted: the laziness boundary; the first pull drains upstream completely,
//     sorts stably, then yields
//   - Concat: join streams end to end
//
// Terminals:
//
//   - ToSlice, ForEach, Count, Collect, Fold
//   - Reduce (Optional), ReduceWith (seeded)
//   - FindFirst, FindAny, AnyMatch, AllMatch, NoneMatch (short-circuit)
//   - Min, Max (Optional)
//   - Iter, All for manual consumption
//
// # Errors
//
// A failing source aborts the terminal with a SOURCE_FAILURE *errors.AppError
// wrapping the producer's error. Errors returned by TryMap functions and by
// collectors are passed through untouched. An error only surfaces once the
// terminal pulls far enough to meet it.
//
// # Usage
//
//	friends := stream.Of("Brian", "Nate", "Neal", "Raju", "Sara", "Scott")
//	first, err := friends.Filter(startsWith("N")).FindFirst(ctx)
//	fmt.Println(first.OrElse("No name found"))
//
//	upper := stream.Map(friends, strings.ToUpper)
//	joined, err := stream.Collect(ctx, upper, collector.Joining[string](", "))
package stream
