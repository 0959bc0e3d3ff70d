package parse

import "testing"

func TestNewStateStartsAtOne(t *testing.T) {
	s := NewState([]string{"a", "b"})
	if s.Pos() != 1 {
		t.Fatalf("expected position 1, got %d", s.Pos())
	}
	line, ok := s.Current()
	if !ok || line != "a" {
		t.Errorf("expected %q, got %q (ok=%v)", "a", line, ok)
	}
}

func TestAdvanceCapsPastLastLine(t *testing.T) {
	s := NewState([]string{"only"})
	s = s.Advance()
	if !s.AtEnd() {
		t.Fatal("expected end of input after one advance")
	}
	if s.Pos() != 2 {
		t.Errorf("expected position 2, got %d", s.Pos())
	}
	s = s.Advance()
	if s.Pos() != 2 {
		t.Errorf("expected position to stay at 2, got %d", s.Pos())
	}
	if _, ok := s.Current(); ok {
		t.Error("expected no current line at end of input")
	}
}

func TestEmptyInputIsExhausted(t *testing.T) {
	s := NewState(nil)
	if !s.AtEnd() {
		t.Error("expected empty input to start exhausted")
	}
	if s.Pos() != 1 {
		t.Errorf("expected position 1, got %d", s.Pos())
	}
}

func TestAdvanceDoesNotMutate(t *testing.T) {
	s := NewState([]string{"a", "b", "c"})
	next := s.Advance()
	if s.Pos() != 1 {
		t.Errorf("expected original state at position 1, got %d", s.Pos())
	}
	if next.Pos() != 2 {
		t.Errorf("expected advanced state at position 2, got %d", next.Pos())
	}
}

func TestWithContext(t *testing.T) {
	s := NewState([]string{"a"})
	ctx := Context{InCodeBlock: true, CodeLang: "lua", Section: "notes"}
	inCode := s.WithContext(ctx)
	if got := inCode.Context(); got != ctx {
		t.Errorf("expected %+v, got %+v", ctx, got)
	}
	if s.Context().InCodeBlock {
		t.Error("expected original state context to be unchanged")
	}
	if inCode.Pos() != s.Pos() {
		t.Errorf("expected position %d, got %d", s.Pos(), inCode.Pos())
	}
}
