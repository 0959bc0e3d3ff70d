package parse

import (
	"regexp"

	"github.com/dhamidi/moondoc/fn"
)

// Satisfy succeeds when pred accepts the current line, consuming it.
// It fails at end of input and consumes nothing on failure.
func Satisfy(pred func(string) bool) Parser[string] {
	return func(s State) Result[string] {
		line, ok := s.Current()
		if !ok || !pred(line) {
			return Failure[string]()
		}
		return Success(line, s.Advance())
	}
}

// Match succeeds when re matches the current line, consuming it. The
// result value is the submatch slice as returned by FindStringSubmatch.
func Match(re *regexp.Regexp) Parser[[]string] {
	return func(s State) Result[[]string] {
		line, ok := s.Current()
		if !ok {
			return Failure[[]string]()
		}
		groups := re.FindStringSubmatch(line)
		if groups == nil {
			return Failure[[]string]()
		}
		return Success(groups, s.Advance())
	}
}

// Map transforms the value of a successful parse, leaving failure and
// state untouched.
func Map[A, B any](f func(A) B, p Parser[A]) Parser[B] {
	return func(s State) Result[B] {
		r := p(s)
		if !r.Ok() {
			return Failure[B]()
		}
		return Success(f(r.Value), r.Next)
	}
}

// Bind sequences a parse with a parser derived from its value.
func Bind[A, B any](f func(A) Parser[B], p Parser[A]) Parser[B] {
	return func(s State) Result[B] {
		r := p(s)
		if !r.Ok() {
			return Failure[B]()
		}
		return f(r.Value)(r.Next)
	}
}

// Choice tries each parser in order against the same start state and
// returns the first success.
func Choice[T any](parsers ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		for _, p := range parsers {
			if r := p(s); r.Ok() {
				return r
			}
		}
		return Failure[T]()
	}
}

// Many applies p zero or more times, collecting the values. It always
// succeeds. A success that consumes nothing ends the loop so that Many
// cannot spin in place.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		var values []T
		cur := s
		for {
			r := p(cur)
			if !r.Ok() || r.Next.Pos() == cur.Pos() {
				break
			}
			values = append(values, r.Value)
			cur = r.Next
		}
		return Success(values, cur)
	}
}

// Optional turns failure into a successful Nothing at the original state.
func Optional[T any](p Parser[T]) Parser[fn.Maybe[T]] {
	return func(s State) Result[fn.Maybe[T]] {
		r := p(s)
		if !r.Ok() {
			return Success(fn.Nothing[T](), s)
		}
		return Success(fn.Just(r.Value), r.Next)
	}
}
