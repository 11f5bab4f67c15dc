package optional

import "fmt"

// Optional holds at most one value of type T. The zero value is empty.
type Optional[T any] struct {
	value   T
	present bool
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Empty returns an Optional holding nothing.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr returns an Optional holding *p, or an empty Optional when p is nil.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Empty[T]()
	}
	return Of(*p)
}

// FromPair builds an Optional from the comma-ok idiom.
//
//	v, ok := m[key]
//	o := optional.FromPair(v, ok)
func FromPair[T any](v T, ok bool) Optional[T] {
	if !ok {
		return Empty[T]()
	}
	return Of(v)
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool { return o.present }

// IsEmpty reports whether no value is held.
func (o Optional[T]) IsEmpty() bool { return !o.present }

// Get returns the held value and true, or the zero value and false.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// OrElse returns the held value, or def when empty.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// OrElseGet returns the held value, or the result of supplier when empty.
// supplier is only invoked when the Optional is empty.
func (o Optional[T]) OrElseGet(supplier func() T) T {
	if o.present {
		return o.value
	}
	return supplier()
}

// OrZero returns the held value or the zero value of T.
func (o Optional[T]) OrZero() T { return o.value }

// Or returns o when present, otherwise the Optional produced by supplier.
func (o Optional[T]) Or(supplier func() Optional[T]) Optional[T] {
	if o.present {
		return o
	}
	return supplier()
}

// Filter keeps the value only if predicate holds for it.
func (o Optional[T]) Filter(predicate func(T) bool) Optional[T] {
	if o.present && predicate(o.value) {
		return o
	}
	return Empty[T]()
}

// IfPresent calls consumer with the held value, if any.
func (o Optional[T]) IfPresent(consumer func(T)) {
	if o.present {
		consumer(o.value)
	}
}

// IfPresentOrElse calls consumer with the held value, or orElse when empty.
func (o Optional[T]) IfPresentOrElse(consumer func(T), orElse func()) {
	if o.present {
		consumer(o.value)
		return
	}
	orElse()
}

// String implements fmt.Stringer.
func (o Optional[T]) String() string {
	if !o.present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.value)
}

// Map applies fn to the held value. fn is never invoked on an empty Optional.
func Map[T, U any](o Optional[T], fn func(T) U) Optional[U] {
	if !o.present {
		return Empty[U]()
	}
	return Of(fn(o.value))
}

// FlatMap applies fn to the held value and returns its result unchanged.
func FlatMap[T, U any](o Optional[T], fn func(T) Optional[U]) Optional[U] {
	if !o.present {
		return Empty[U]()
	}
	return fn(o.value)
}
