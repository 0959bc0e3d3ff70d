package parse

// Result is the outcome of running a Parser: either a value plus the
// state after consumption, or a failure. A failure carries no state;
// the caller still holds the state it passed in.
type Result[T any] struct {
	Value T
	Next  State
	ok    bool
}

// Success returns a successful Result carrying value and the next state.
func Success[T any](value T, next State) Result[T] {
	return Result[T]{Value: value, Next: next, ok: true}
}

// Failure returns a failed Result.
func Failure[T any]() Result[T] {
	return Result[T]{}
}

// Ok reports whether the parse succeeded.
func (r Result[T]) Ok() bool { return r.ok }

// Parser consumes lines from a State and produces a Result.
type Parser[T any] func(State) Result[T]
