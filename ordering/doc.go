// Package ordering provides composable three-way comparators.
//
// A Comparator is a single function returning Less, Equal or Greater.
// Larger orderings are built by composition rather than by writing new
// comparison logic:
//
//	byAge := ordering.By(func(p Person) int { return p.Age })
//	byName := ordering.By(func(p Person) string { return p.Name })
//	oldestFirst := byAge.Reversed().Then(byName)
//
// Comparators must be stateless and total over the values they order.
package ordering
