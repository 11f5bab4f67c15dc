package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/kbukum/seqkit/collector"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/optional"
	"github.com/kbukum/seqkit/ordering"
	"github.com/kbukum/seqkit/resilience"
	"github.com/kbukum/seqkit/source"
	"github.com/kbukum/seqkit/stream"
)

var (
	// prices in cents
	prices   = []int64{1000, 3000, 1700, 2000, 1500, 1800, 4500, 1200}
	friends  = []string{"Brian", "Nate", "Neal", "Raju", "Sara", "Scott"}
	editors  = []string{"Brian", "Jackie", "John", "Mike"}
	comrades = []string{"Kate", "Ken", "Nick", "Paula", "Zach"}
	people   = []Person{{"John", 20}, {"Sara", 21}, {"Jane", 21}, {"Greg", 35}}
)

// Person is the record sorted and grouped by the people demos.
type Person struct {
	Name string
	Age  int
}

func (p Person) String() string { return fmt.Sprintf("%s - %d", p.Name, p.Age) }

func (p Person) ageDifference(other Person) int { return p.Age - other.Age }

var (
	byAge  = ordering.By(func(p Person) int { return p.Age })
	byName = ordering.By(func(p Person) string { return p.Name })
)

// demo is one runnable entry of the catalog.
type demo struct {
	name string
	run  func(d *demos, ctx context.Context) (int, error)
}

var catalog = []demo{
	{"prices", (*demos).prices},
	{"friends", (*demos).friends},
	{"names", (*demos).names},
	{"first", (*demos).first},
	{"reduce", (*demos).reduce},
	{"runes", (*demos).runes},
	{"people", (*demos).people},
	{"grouping", (*demos).grouping},
	{"listing", (*demos).listing},
	{"flatten", (*demos).flatten},
	{"watch", (*demos).watch},
}

// demos holds what every demo prints to and reads from. Each demo returns
// the number of items it produced.
type demos struct {
	out     io.Writer
	fs      afero.Fs
	cfg     *DemoConfig
	metrics *observability.Metrics
	log     *logger.Logger
	watchFn func(path string, opts ...source.WatchOption) (*source.Watcher, error)
}

func newDemos(out io.Writer, fs afero.Fs, cfg *DemoConfig, metrics *observability.Metrics) *demos {
	return &demos{
		out:     out,
		fs:      fs,
		cfg:     cfg,
		metrics: metrics,
		log:     logger.Get("demo"),
		watchFn: source.Watch,
	}
}

// instrument names s and attaches pull counters and a span to it.
func instrument[T any](d *demos, s *stream.Stream[T], name string) *stream.Stream[T] {
	return observability.InstrumentStream(s.Named(name), name, d.metrics)
}

func (d *demos) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *demos) println(args ...any) {
	fmt.Fprintln(d.out, args...)
}

func (d *demos) heading(title string) {
	d.printf("---------- %s ----------\n", title)
}

// initial returns the first letter of name, or "" for an empty name.
func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(r)
}

func checkIfStartWith(letter string) func(string) bool {
	return func(name string) bool { return strings.HasPrefix(name, letter) }
}

func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// prices totals the prices above 20 after a 10% discount.
func (d *demos) prices(ctx context.Context) (int, error) {
	d.heading("discounted prices")

	var loopTotal int64
	for _, p := range prices {
		if p > 2000 {
			loopTotal += p * 9 / 10
		}
	}
	d.println("Total of discounted prices:", formatCents(loopTotal))

	discounted := stream.Map(
		instrument(d, stream.FromSlice(prices), "prices").Filter(func(p int64) bool { return p > 2000 }),
		func(p int64) int64 { return p * 9 / 10 },
	)
	total, err := stream.Fold(ctx, discounted, int64(0), func(acc, p int64) int64 { return acc + p })
	if err != nil {
		return 0, err
	}
	d.println("Total of discounted prices:", formatCents(total))
	return 1, nil
}

// friends iterates and transforms the friends list.
func (d *demos) friends(ctx context.Context) (int, error) {
	d.heading("forEach")
	s := instrument(d, stream.FromSlice(friends), "friends")
	if err := s.ForEach(ctx, func(name string) { d.println(name) }); err != nil {
		return 0, err
	}

	d.heading("upper-case names ending in E")
	upper := stream.Map(s, strings.ToUpper)
	if err := upper.Filter(func(name string) bool { return strings.HasSuffix(name, "E") }).
		ForEach(ctx, func(name string) { d.println(name) }); err != nil {
		return 0, err
	}

	d.heading("upper-case names")
	if err := upper.ForEach(ctx, func(name string) { d.println(name) }); err != nil {
		return 0, err
	}

	d.heading("name lengths")
	lengths := stream.Map(s, func(name string) int { return len(name) })
	if err := lengths.ForEach(ctx, func(n int) { d.println(n) }); err != nil {
		return 0, err
	}
	return len(friends), nil
}

// names filters and counts by starting letter with a reusable predicate.
func (d *demos) names(ctx context.Context) (int, error) {
	d.heading("names starting with N")
	startsWithN := checkIfStartWith("N")

	found, err := instrument(d, stream.FromSlice(friends), "friends").Filter(startsWithN).ToSlice(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range found {
		d.println(name)
	}
	d.printf("FOUND %d names\n", len(found))

	groups := []struct {
		label string
		names []string
	}{
		{"friends", friends},
		{"editors", editors},
		{"comrades", comrades},
	}
	for _, g := range groups {
		n, err := stream.FromSlice(g.names).Filter(startsWithN).Count(ctx)
		if err != nil {
			return 0, err
		}
		d.printf("%s starting with N: %d\n", g.label, n)
	}

	nCount, err := stream.FromSlice(friends).Filter(checkIfStartWith("N")).Count(ctx)
	if err != nil {
		return 0, err
	}
	bCount, err := stream.FromSlice(friends).Filter(checkIfStartWith("B")).Count(ctx)
	if err != nil {
		return 0, err
	}
	d.printf("friends starting with N or B: %d\n", nCount+bCount)
	return len(found), nil
}

func (d *demos) pickName(ctx context.Context, names []string, letter string) (optional.Optional[string], error) {
	return instrument(d, stream.FromSlice(names), "pick_name").Filter(checkIfStartWith(letter)).FindFirst(ctx)
}

// first picks the first name with a given initial.
func (d *demos) first(ctx context.Context) (int, error) {
	d.heading("first match")
	found := 0
	for _, letter := range []string{"S", "C"} {
		name, err := d.pickName(ctx, friends, letter)
		if err != nil {
			return found, err
		}
		if name.IsPresent() {
			found++
		}
		d.printf("First name starting with %s: %s\n", letter, name.OrElse("No name found"))
	}
	return found, nil
}

func longer(a, b string) string {
	if len(a) >= len(b) {
		return a
	}
	return b
}

// reduce sums, reduces and joins the friends list.
func (d *demos) reduce(ctx context.Context) (int, error) {
	d.heading("reduce and join")
	s := instrument(d, stream.FromSlice(friends), "friends")

	total, err := stream.Collect(ctx, s, collector.Summing(func(name string) int { return len(name) }))
	if err != nil {
		return 0, err
	}
	d.println("Total number of characters in all names:", total)

	longest, err := s.Reduce(ctx, longer)
	if err != nil {
		return 0, err
	}
	longest.IfPresent(func(name string) { d.printf("A longest name: %s\n", name) })

	steveOrLonger, err := s.ReduceWith(ctx, "Ste", longer)
	if err != nil {
		return 0, err
	}
	d.println(steveOrLonger)

	joined, err := stream.Collect(ctx, s, collector.Joining[string](", "))
	if err != nil {
		return 0, err
	}
	d.println(joined)

	upper, err := stream.Collect(ctx, stream.Map(s, strings.ToUpper), collector.Joining[string](", "))
	if err != nil {
		return 0, err
	}
	d.println(upper)
	return 1, nil
}

// runes walks the characters of a string and keeps the digits.
func (d *demos) runes(ctx context.Context) (int, error) {
	const str = "w00t"
	d.heading("characters of " + str)

	chars := instrument(d, stream.Runes(str), "runes")
	if err := chars.ForEach(ctx, func(r rune) { d.println(int(r)) }); err != nil {
		return 0, err
	}
	if err := chars.ForEach(ctx, func(r rune) { d.println(string(r)) }); err != nil {
		return 0, err
	}

	d.heading("digits")
	digits, err := chars.Filter(unicode.IsDigit).ToSlice(ctx)
	if err != nil {
		return 0, err
	}
	for _, r := range digits {
		d.println(string(r))
	}
	return len(digits), nil
}

func (d *demos) printPeople(message string, ps []Person) {
	d.println(message)
	for _, p := range ps {
		d.println(p)
	}
}

// people sorts people by age and name and finds the youngest and eldest.
func (d *demos) people(ctx context.Context) (int, error) {
	d.heading("sorting")
	s := instrument(d, stream.FromSlice(people), "people")
	ascending := ordering.FromInt(Person.ageDifference)

	sorts := []struct {
		message string
		cmp     ordering.Comparator[Person]
	}{
		{"Sorted in ascending order by age:", ascending},
		{"Sorted in descending order by age:", ascending.Reversed()},
		{"Sorted in ascending order by name:", byName},
		{"Sorted in ascending order by age and name:", byAge.Then(byName)},
	}
	for _, srt := range sorts {
		sorted, err := s.Sorted(srt.cmp).ToSlice(ctx)
		if err != nil {
			return 0, err
		}
		d.printPeople(srt.message, sorted)
	}

	youngest, err := s.Min(ctx, ascending)
	if err != nil {
		return 0, err
	}
	youngest.IfPresent(func(p Person) { d.println("Youngest:", p) })

	eldest, err := s.Max(ctx, ascending)
	if err != nil {
		return 0, err
	}
	eldest.IfPresent(func(p Person) { d.println("Eldest:", p) })
	return len(people), nil
}

// grouping filters and groups people with collectors.
func (d *demos) grouping(ctx context.Context) (int, error) {
	d.heading("grouping")
	s := instrument(d, stream.FromSlice(people), "people")

	olderThan20, err := stream.Collect(ctx, s.Filter(func(p Person) bool { return p.Age > 20 }), collector.ToList[Person]())
	if err != nil {
		return 0, err
	}
	d.println("People older than 20:", olderThan20)

	byAgeGroups, err := stream.Collect(ctx, s, collector.GroupingBy(func(p Person) int { return p.Age }))
	if err != nil {
		return 0, err
	}
	d.println("Grouped by age:", byAgeGroups)

	namesByAge, err := stream.Collect(ctx, s, collector.GroupingByTo(
		func(p Person) int { return p.Age },
		collector.Mapping(func(p Person) string { return p.Name }, collector.ToList[string]()),
	))
	if err != nil {
		return 0, err
	}
	d.println("Names grouped by age:", namesByAge)

	oldest, err := stream.Collect(ctx, s, collector.GroupingByTo(
		func(p Person) string { return initial(p.Name) },
		collector.Reducing(ordering.MaxBy(byAge)),
	))
	if err != nil {
		return 0, err
	}
	d.println("Oldest person of each letter:", oldest)
	return len(byAgeGroups), nil
}

func (d *demos) listOpts(extra ...source.DirOption) []source.DirOption {
	opts := []source.DirOption{source.WithBatchSize(d.cfg.Listing.BatchSize)}
	return append(opts, extra...)
}

// listing lists a directory four ways.
func (d *demos) listing(ctx context.Context) (int, error) {
	dir := d.cfg.Listing.Dir
	list := func(opts ...source.DirOption) *stream.Stream[source.Entry] {
		return instrument(d, source.ListDir(d.fs, dir, d.listOpts(opts...)...), "listing")
	}
	printEntry := func(e source.Entry) { d.println(e.Path) }

	d.heading("all entries of " + dir)
	all, err := resilience.ToSlice(ctx, d.cfg.Retry, list())
	if err != nil {
		return 0, err
	}
	for _, e := range all {
		printEntry(e)
	}

	d.heading("directories of " + dir)
	if err := list().Filter(func(e source.Entry) bool { return e.IsDir }).ForEach(ctx, printEntry); err != nil {
		return len(all), err
	}

	d.heading(d.cfg.Listing.Pattern + " files of " + d.cfg.Listing.TextDir)
	matching := source.ListDir(d.fs, d.cfg.Listing.TextDir, d.listOpts(source.WithPattern(d.cfg.Listing.Pattern))...)
	if err := matching.ForEach(ctx, printEntry); err != nil {
		return len(all), err
	}

	d.heading("hidden entries of " + dir)
	if err := list().Filter(source.Entry.Hidden).ForEach(ctx, printEntry); err != nil {
		return len(all), err
	}
	return len(all), nil
}

// flatten expands every directory one level into its entries and counts
// the result.
func (d *demos) flatten(ctx context.Context) (int, error) {
	d.heading("flattened one level")
	dir := d.cfg.Listing.Dir

	var loop []source.Entry
	top, err := source.ListDir(d.fs, dir, d.listOpts()...).ToSlice(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range top {
		if !e.IsDir {
			loop = append(loop, e)
			continue
		}
		inner, err := source.ListDir(d.fs, e.Path, d.listOpts()...).ToSlice(ctx)
		if err != nil {
			return 0, err
		}
		loop = append(loop, inner...)
	}
	d.println("Count:", len(loop))

	flat := stream.FlatMap(instrument(d, source.ListDir(d.fs, dir, d.listOpts()...), "flatten"),
		func(e source.Entry) *stream.Stream[source.Entry] {
			if e.IsDir {
				return source.ListDir(d.fs, e.Path, d.listOpts()...)
			}
			return stream.Of(e)
		})
	n, err := flat.Count(ctx)
	if err != nil {
		return 0, err
	}
	d.println("Count:", n)
	return n, nil
}

// watch reports files modified within the configured timeout.
func (d *demos) watch(ctx context.Context) (int, error) {
	if !d.cfg.Watch.Enabled {
		d.log.Debug("watch demo disabled")
		return 0, nil
	}
	path, timeout := d.cfg.Watch.Path, d.cfg.Watch.Timeout

	w, err := d.watchFn(path, source.WithOps(fsnotify.Write), source.WithLogger(d.log))
	if err != nil {
		return 0, err
	}
	defer w.Close()

	d.printf("Report any file changed within next %s...\n", timeout)

	retry := d.cfg.Retry
	retry.OnRetry = resilience.LogRetries(d.log)
	events, err := resilience.Retry(ctx, retry, func(ctx context.Context) ([]source.Event, error) {
		return w.Poll(ctx, timeout)
	})
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		d.println("No changes")
		return 0, nil
	}

	names, err := stream.Collect(ctx, stream.Map(stream.FromSlice(events), func(e source.Event) string { return e.Name }),
		collector.ToList[string]())
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		d.println(name)
	}
	return len(names), nil
}
