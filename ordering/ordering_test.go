package ordering

import (
	"slices"
	"testing"
)

type person struct {
	name string
	age  int
}

func (p person) ageDifference(other person) int { return p.age - other.age }

func names(ps []person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.name
	}
	return out
}

func TestOf(t *testing.T) {
	tests := []struct {
		in   int
		want Ordering
	}{
		{-7, Less},
		{0, Equal},
		{12, Greater},
	}
	for _, tc := range tests {
		if got := Of(tc.in); got != tc.want {
			t.Errorf("Of(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestOrdering_Reverse(t *testing.T) {
	if Less.Reverse() != Greater || Greater.Reverse() != Less || Equal.Reverse() != Equal {
		t.Error("Reverse should swap Less and Greater only")
	}
}

func TestNatural(t *testing.T) {
	c := Natural[string]()
	if c("Brian", "Nate") != Less || c("Nate", "Nate") != Equal || c("Sara", "Nate") != Greater {
		t.Error("unexpected natural string ordering")
	}
}

func TestReversedBy_SortsDescending(t *testing.T) {
	people := []person{{"A", 20}, {"B", 35}, {"C", 21}}
	byAge := By(func(p person) int { return p.age })

	asc := slices.Clone(people)
	slices.SortStableFunc(asc, byAge.Func())
	if got := names(asc); !slices.Equal(got, []string{"A", "C", "B"}) {
		t.Errorf("ascending got %v", got)
	}

	desc := slices.Clone(people)
	slices.SortStableFunc(desc, Reversed(byAge).Func())
	if got := names(desc); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Errorf("descending got %v, want [B C A]", got)
	}
}

func TestThenBy_ShortCircuits(t *testing.T) {
	calls := 0
	secondary := func(a, b person) Ordering {
		calls++
		return Natural[string]()(a.name, b.name)
	}
	c := ThenBy(By(func(p person) int { return p.age }), secondary)

	if c(person{"John", 20}, person{"Sara", 21}) != Less {
		t.Error("primary should decide")
	}
	if calls != 0 {
		t.Errorf("secondary evaluated %d times when primary decided", calls)
	}
	if c(person{"Sara", 21}, person{"Jane", 21}) != Greater {
		t.Error("secondary should break the tie")
	}
	if calls != 1 {
		t.Errorf("secondary evaluated %d times, want 1", calls)
	}
}

func TestThen_AgeThenName(t *testing.T) {
	people := []person{{"John", 20}, {"Sara", 21}, {"Jane", 21}, {"Greg", 35}}
	c := By(func(p person) int { return p.age }).Then(By(func(p person) string { return p.name }))
	slices.SortStableFunc(people, c.Func())
	want := []string{"John", "Jane", "Sara", "Greg"}
	if got := names(people); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestThenByKey(t *testing.T) {
	c := ThenByKey(By(func(p person) int { return p.age }), func(p person) string { return p.name })
	if c(person{"Sara", 21}, person{"Jane", 21}) != Greater {
		t.Error("expected name to break the tie")
	}
}

func TestFromInt(t *testing.T) {
	c := FromInt(person.ageDifference)
	if c(person{"John", 20}, person{"Greg", 35}) != Less {
		t.Error("expected Less")
	}
	if c.Reversed().Compare(person{"John", 20}, person{"Greg", 35}) != Greater {
		t.Error("expected Greater after reversal")
	}
}

func TestByWith(t *testing.T) {
	c := ByWith(func(p person) string { return p.name }, Natural[string]().Reversed())
	if c(person{name: "A"}, person{name: "B"}) != Greater {
		t.Error("expected reversed key ordering")
	}
}

func TestMaxByMinBy(t *testing.T) {
	byAge := By(func(p person) int { return p.age })
	sara, jane := person{"Sara", 21}, person{"Jane", 21}
	if MaxBy(byAge)(sara, jane).name != "Sara" {
		t.Error("ties should keep the first argument")
	}
	if MinBy(byAge)(sara, jane).name != "Sara" {
		t.Error("ties should keep the first argument")
	}
	if MaxBy(byAge)(person{"John", 20}, person{"Greg", 35}).name != "Greg" {
		t.Error("expected Greg as max")
	}
	if MinBy(byAge)(person{"Greg", 35}, person{"John", 20}).name != "John" {
		t.Error("expected John as min")
	}
}

func TestOrdering_String(t *testing.T) {
	if Less.String() != "Less" || Equal.String() != "Equal" || Greater.String() != "Greater" {
		t.Error("unexpected String output")
	}
}
