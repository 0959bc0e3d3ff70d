// Package parse implements line-oriented parser combinators.
package parse

// Context carries the parsing context threaded through a State: whether
// the cursor sits inside a fenced code block, the fence's language tag,
// and the current documentation section.
type Context struct {
	InCodeBlock bool
	CodeLang    string
	Section     string
}

// State is an immutable cursor over a slice of lines. Positions are
// 1-based; len(lines)+1 means the input is exhausted. Operations return
// new states and never move the cursor backwards.
type State struct {
	lines []string
	pos   int
	ctx   Context
}

// NewState returns a State positioned at the first line.
func NewState(lines []string) State {
	return State{lines: lines, pos: 1}
}

// Current returns the line under the cursor, or false when the input is
// exhausted.
func (s State) Current() (string, bool) {
	if s.pos < 1 || s.pos > len(s.lines) {
		return "", false
	}
	return s.lines[s.pos-1], true
}

// Advance returns a State moved forward by one line, capped just past
// the last line.
func (s State) Advance() State {
	if s.pos <= len(s.lines) {
		s.pos++
	}
	return s
}

// AtEnd reports whether the input is exhausted.
func (s State) AtEnd() bool {
	return s.pos > len(s.lines)
}

// Pos returns the 1-based cursor position.
func (s State) Pos() int { return s.pos }

// Len returns the number of lines.
func (s State) Len() int { return len(s.lines) }

// Context returns the parsing context.
func (s State) Context() Context { return s.ctx }

// WithContext returns a State carrying ctx in place of the current context.
func (s State) WithContext(ctx Context) State {
	s.ctx = ctx
	return s
}
