package collector

import (
	"reflect"
	"slices"
	"testing"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/optional"
	"github.com/kbukum/seqkit/ordering"
)

type student struct {
	name string
	age  int
}

var students = []student{
	{"John", 20},
	{"Sara", 21},
	{"Jane", 21},
	{"Greg", 35},
}

func TestApply_ToList(t *testing.T) {
	got, err := Apply(ToList[int](), []int{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{3, 1, 2}) {
		t.Errorf("got %v, want [3 1 2]", got)
	}
}

func TestApply_ToList_Empty(t *testing.T) {
	got, err := Apply(ToList[int](), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestIdentityLaw(t *testing.T) {
	t.Run("ToList", func(t *testing.T) {
		c := ToList[string]()
		single, _ := c.Accumulate(c.Create(), "x")
		merged, err := c.Combine(c.Create(), single)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(merged, []string{"x"}) {
			t.Errorf("got %v, want [x]", merged)
		}
	})

	t.Run("Joining", func(t *testing.T) {
		c := Joining[string](", ")
		single, _ := c.Accumulate(c.Create(), "A")
		merged, _ := c.Combine(c.Create(), single)
		if c.Finish(merged) != c.Finish(single) {
			t.Errorf("got %q, want %q", c.Finish(merged), c.Finish(single))
		}
	})

	t.Run("GroupingBy", func(t *testing.T) {
		c := GroupingBy(func(s string) int { return len(s) })
		single, _ := c.Accumulate(c.Create(), "Nate")
		merged, _ := c.Combine(c.Create(), single)
		if !reflect.DeepEqual(c.Finish(merged), c.Finish(single)) {
			t.Errorf("got %v, want %v", c.Finish(merged), c.Finish(single))
		}
	})

	t.Run("Reducing", func(t *testing.T) {
		c := Reducing(func(a, b int) int { return a + b })
		single, _ := c.Accumulate(c.Create(), 5)
		merged, _ := c.Combine(c.Create(), single)
		if merged != single {
			t.Errorf("got %v, want %v", merged, single)
		}
	})

	t.Run("Counting", func(t *testing.T) {
		c := Counting[string]()
		single, _ := c.Accumulate(c.Create(), "x")
		merged, _ := c.Combine(c.Create(), single)
		if merged != single {
			t.Errorf("got %d, want %d", merged, single)
		}
	})
}

func TestJoining(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		c    Collector[string, []string, string]
		want string
	}{
		{"three", []string{"A", "B", "C"}, Joining[string](", "), "A, B, C"},
		{"empty", nil, Joining[string](", "), ""},
		{"single", []string{"A"}, Joining[string](", "), "A"},
		{"prefix suffix", []string{"A", "B"}, JoiningWith[string]("|", "[", "]"), "[A|B]"},
		{"empty prefix suffix", nil, JoiningWith[string]("|", "[", "]"), "[]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.c, tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestJoining_StringLike(t *testing.T) {
	type name string
	got, _ := Apply(Joining[name]("-"), []name{"x", "y"})
	if got != "x-y" {
		t.Errorf("got %q, want x-y", got)
	}
}

func TestGroupingBy_PreservesOrderWithinGroup(t *testing.T) {
	got, err := Apply(GroupingBy(func(s string) int { return len(s) }), []string{"Nate", "Neal", "Sara"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int][]string{4: {"Nate", "Neal", "Sara"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupingByTo_Mapping(t *testing.T) {
	c := GroupingByTo(
		func(s student) int { return s.age },
		Mapping(func(s student) string { return s.name }, ToList[string]()),
	)
	got, err := Apply(c, students)
	if err != nil {
		t.Fatal(err)
	}
	want := map[int][]string{20: {"John"}, 21: {"Sara", "Jane"}, 35: {"Greg"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupingByTo_ReducingMaxBy(t *testing.T) {
	byAge := ordering.By(func(s student) int { return s.age })
	c := GroupingByTo(func(s student) byte { return s.name[0] }, Reducing(ordering.MaxBy(byAge)))
	got, err := Apply(c, students)
	if err != nil {
		t.Fatal(err)
	}
	want := map[byte]optional.Optional[student]{
		'J': optional.Of(student{"Jane", 21}),
		'S': optional.Of(student{"Sara", 21}),
		'G': optional.Of(student{"Greg", 35}),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("group %c: got %v, want %v", k, got[k], w)
		}
	}
}

func TestGroupingByTo_MultiLevel(t *testing.T) {
	c := GroupingByTo(
		func(s student) int { return s.age },
		GroupingByTo(func(s student) byte { return s.name[0] }, Counting[student]()),
	)
	got, err := Apply(c, students)
	if err != nil {
		t.Fatal(err)
	}
	if got[21]['S'] != 1 || got[21]['J'] != 1 || got[35]['G'] != 1 {
		t.Errorf("unexpected nested groups %v", got)
	}
}

func TestToMap_Collision(t *testing.T) {
	type pair struct{ k, v string }
	in := []pair{{"k1", "v1"}, {"k1", "v2"}}
	key := func(p pair) string { return p.k }
	val := func(p pair) string { return p.v }

	_, err := Apply(ToMap(key, val), in)
	if !errors.IsKeyCollision(err) {
		t.Fatalf("expected KEY_COLLISION, got %v", err)
	}

	got, err := Apply(ToMapMerge(key, val, func(_, b string) string { return b }), in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, map[string]string{"k1": "v2"}) {
		t.Errorf("got %v, want map[k1:v2]", got)
	}
}

func TestToMap_CollisionAcrossPartitions(t *testing.T) {
	c := ToMap(func(s string) string { return s }, func(s string) int { return len(s) })
	_, err := ApplyPartitions(c, []string{"a", "b"}, []string{"a"})
	if !errors.IsKeyCollision(err) {
		t.Fatalf("expected KEY_COLLISION on combine, got %v", err)
	}
}

func TestToSet(t *testing.T) {
	got, err := Apply(ToSet[string](), []string{"a", "b", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 distinct, got %v", got)
	}
}

func TestReducing(t *testing.T) {
	longer := func(a, b string) string {
		if len(a) >= len(b) {
			return a
		}
		return b
	}
	got, _ := Apply(Reducing(longer), []string{"Brian", "Nate", "Neal", "Raju", "Sara", "Scott"})
	if got.OrElse("") != "Brian" {
		t.Errorf("got %v, want Brian", got)
	}
	empty, _ := Apply(Reducing(longer), nil)
	if empty.IsPresent() {
		t.Error("expected empty Optional for no input")
	}

	seeded, _ := Apply(ReducingSeed("Steve", longer), []string{"Brian", "Nate"})
	if seeded != "Steve" {
		t.Errorf("got %q, want Steve", seeded)
	}
}

func TestReducingMapped(t *testing.T) {
	c := ReducingMapped(0, func(s string) int { return len(s) }, func(a, b int) int { return a + b })
	got, _ := Apply(c, []string{"Brian", "Nate"})
	if got != 9 {
		t.Errorf("got %d, want 9", got)
	}
}

func TestSummingAveraging(t *testing.T) {
	sum, _ := Apply(Summing(func(s student) int { return s.age }), students)
	if sum != 97 {
		t.Errorf("sum got %d, want 97", sum)
	}
	avg, _ := Apply(Averaging(func(s student) int { return s.age }), students)
	if avg.OrElse(0) != 24.25 {
		t.Errorf("avg got %v, want 24.25", avg)
	}
	none, _ := Apply(Averaging(func(s student) int { return s.age }), nil)
	if none.IsPresent() {
		t.Error("expected no mean for empty input")
	}
}

func TestMinByMaxBy(t *testing.T) {
	byAge := ordering.By(func(s student) int { return s.age })
	youngest, _ := Apply(MinBy(byAge), students)
	eldest, _ := Apply(MaxBy(byAge), students)
	if youngest.OrZero().name != "John" || eldest.OrZero().name != "Greg" {
		t.Errorf("got youngest=%v eldest=%v", youngest, eldest)
	}
}

func TestFiltering(t *testing.T) {
	c := Filtering(func(s student) bool { return s.age > 20 }, Counting[student]())
	got, _ := Apply(c, students)
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestPartitioningBy_BothKeys(t *testing.T) {
	c := PartitioningBy(func(n int) bool { return n > 100 }, ToList[int]())
	got, err := Apply(c, []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got[true]) != 0 || !slices.Equal(got[false], []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if _, ok := got[true]; !ok {
		t.Error("expected true key to be present")
	}
}

func TestCollectingAndThen(t *testing.T) {
	c := CollectingAndThen(ToList[int](), func(l []int) int { return len(l) })
	got, _ := Apply(c, []int{1, 2, 3})
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestOfIdentity_CustomCollector(t *testing.T) {
	c := OfIdentity(
		func() []student { return nil },
		func(acc []student, s student) []student { return append(acc, s) },
		func(l, r []student) []student { return append(l, r...) },
	)
	got, _ := Apply(Filtering(func(s student) bool { return s.age > 20 }, c), students)
	if len(got) != 3 || got[0].name != "Sara" {
		t.Errorf("got %v", got)
	}
}

func TestApplyPartitions_MatchesSequential(t *testing.T) {
	in := []string{"Brian", "Nate", "Neal", "Raju", "Sara", "Scott"}
	seq, _ := Apply(Joining[string](", "), in)
	par, err := ApplyPartitions(Joining[string](", "), in[:2], in[2:3], nil, in[3:])
	if err != nil {
		t.Fatal(err)
	}
	if seq != par {
		t.Errorf("partitioned %q != sequential %q", par, seq)
	}

	groups := GroupingBy(func(s string) byte { return s[0] })
	gseq, _ := Apply(groups, in)
	gpar, _ := ApplyPartitions(groups, in[:3], in[3:])
	if !reflect.DeepEqual(gseq, gpar) {
		t.Errorf("partitioned %v != sequential %v", gpar, gseq)
	}
}
