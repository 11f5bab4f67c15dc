package optional

import (
	"strings"
	"testing"
)

func TestOf_Present(t *testing.T) {
	o := Of("Sara")
	if !o.IsPresent() || o.IsEmpty() {
		t.Fatal("expected present")
	}
	v, ok := o.Get()
	if !ok || v != "Sara" {
		t.Errorf("got (%q, %v), want (Sara, true)", v, ok)
	}
}

func TestEmpty_ZeroValue(t *testing.T) {
	var o Optional[int]
	if o.IsPresent() {
		t.Error("zero Optional should be empty")
	}
	if Empty[int]() != o {
		t.Error("Empty should equal the zero value")
	}
	if _, ok := o.Get(); ok {
		t.Error("Get on empty should report false")
	}
}

func TestFromPtr(t *testing.T) {
	if FromPtr[int](nil).IsPresent() {
		t.Error("nil pointer should give empty")
	}
	n := 7
	if got := FromPtr(&n).OrElse(0); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestFromPair(t *testing.T) {
	m := map[string]int{"a": 1}
	v, ok := m["a"]
	if FromPair(v, ok).OrElse(-1) != 1 {
		t.Error("expected present value from comma-ok")
	}
	v, ok = m["b"]
	if FromPair(v, ok).IsPresent() {
		t.Error("expected empty for missing key")
	}
}

func TestMap_EmptyDoesNotInvoke(t *testing.T) {
	calls := 0
	fn := func(s string) string {
		calls++
		return strings.ToUpper(s)
	}
	got := Map(Empty[string](), fn).OrElse("No name found")
	if got != "No name found" {
		t.Errorf("got %q, want default", got)
	}
	if calls != 0 {
		t.Errorf("mapper invoked %d times on empty", calls)
	}
}

func TestMap_Present(t *testing.T) {
	got := Map(Of("nate"), strings.ToUpper).OrElse("")
	if got != "NATE" {
		t.Errorf("got %q, want NATE", got)
	}
	n := Map(Of("nate"), func(s string) int { return len(s) })
	if n.OrZero() != 4 {
		t.Errorf("got %d, want 4", n.OrZero())
	}
}

func TestFlatMap(t *testing.T) {
	half := func(n int) Optional[int] {
		if n%2 != 0 {
			return Empty[int]()
		}
		return Of(n / 2)
	}
	if FlatMap(Of(4), half).OrElse(-1) != 2 {
		t.Error("expected 2")
	}
	if FlatMap(Of(3), half).IsPresent() {
		t.Error("expected empty for odd input")
	}
	if FlatMap(Empty[int](), half).IsPresent() {
		t.Error("expected empty for empty input")
	}
}

func TestFilter(t *testing.T) {
	long := func(s string) bool { return len(s) > 4 }
	if Of("Scott").Filter(long).IsEmpty() {
		t.Error("Scott should pass")
	}
	if Of("Sara").Filter(long).IsPresent() {
		t.Error("Sara should be filtered out")
	}
	if Empty[string]().Filter(long).IsPresent() {
		t.Error("empty stays empty")
	}
}

func TestOrElseGet_Lazy(t *testing.T) {
	calls := 0
	supplier := func() int {
		calls++
		return 42
	}
	if Of(1).OrElseGet(supplier) != 1 {
		t.Error("expected held value")
	}
	if calls != 0 {
		t.Errorf("supplier invoked %d times for present value", calls)
	}
	if Empty[int]().OrElseGet(supplier) != 42 {
		t.Error("expected supplied value")
	}
	if calls != 1 {
		t.Errorf("supplier invoked %d times, want 1", calls)
	}
}

func TestOr(t *testing.T) {
	fallback := func() Optional[int] { return Of(9) }
	if Of(1).Or(fallback).OrZero() != 1 {
		t.Error("present should win")
	}
	if Empty[int]().Or(fallback).OrZero() != 9 {
		t.Error("fallback should be used")
	}
}

func TestIfPresent(t *testing.T) {
	var got []string
	Of("Greg").IfPresent(func(s string) { got = append(got, s) })
	Empty[string]().IfPresent(func(s string) { got = append(got, s) })
	if len(got) != 1 || got[0] != "Greg" {
		t.Errorf("got %v, want [Greg]", got)
	}

	elseCalled := false
	Empty[string]().IfPresentOrElse(func(string) { t.Error("consumer on empty") }, func() { elseCalled = true })
	if !elseCalled {
		t.Error("expected else branch")
	}
	Of("x").IfPresentOrElse(func(string) {}, func() { t.Error("else on present") })
}

func TestString(t *testing.T) {
	if Of(3).String() != "Optional[3]" {
		t.Errorf("got %q", Of(3).String())
	}
	if Empty[int]().String() != "Optional.empty" {
		t.Errorf("got %q", Empty[int]().String())
	}
}
