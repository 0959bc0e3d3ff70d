package fn

// Maybe represents an optional value. The zero value is Nothing.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Just wraps a present value.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{value: v, ok: true}
}

// Nothing returns the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool { return m.ok }

// IsNothing reports whether the value is absent.
func (m Maybe[T]) IsNothing() bool { return !m.ok }

// Get returns the contained value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

// FromMaybe returns the contained value, or def when absent.
func FromMaybe[T any](def T, m Maybe[T]) T {
	if m.ok {
		return m.value
	}
	return def
}

// MapMaybe applies f to the contained value, propagating absence.
func MapMaybe[A, B any](f func(A) B, m Maybe[A]) Maybe[B] {
	if !m.ok {
		return Nothing[B]()
	}
	return Just(f(m.value))
}

// BindMaybe chains a computation that may itself produce nothing.
func BindMaybe[A, B any](f func(A) Maybe[B], m Maybe[A]) Maybe[B] {
	if !m.ok {
		return Nothing[B]()
	}
	return f(m.value)
}
