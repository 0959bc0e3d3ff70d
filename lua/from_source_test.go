package lua

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/moondoc/lua/luadoc"
)

func TestFunctionDocsSimpleBlock(t *testing.T) {
	lines := []string{
		"--- @param x number # the input",
		"--- @return number # doubled value",
		"function double(x)",
		"  return x * 2",
		"end",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}

	fn := doc.Functions[0]
	if fn.Name != "double" {
		t.Errorf("expected name 'double', got %q", fn.Name)
	}
	if fn.Line != 3 {
		t.Errorf("expected line 3, got %d", fn.Line)
	}
	expected := []luadoc.Param{{Name: "x", Type: "number", Description: "the input"}}
	if !reflect.DeepEqual(fn.Params, expected) {
		t.Errorf("unexpected params: %+v", fn.Params)
	}
	if fn.Returns.Type != "number" || fn.Returns.Description != "doubled value" {
		t.Errorf("unexpected returns: %+v", fn.Returns)
	}
}

func TestFunctionDocsLookaheadExceeded(t *testing.T) {
	lines := []string{"--- Documented, but too far away."}
	for i := 0; i < 11; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, "function late()")

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 0 {
		t.Fatalf("expected 0 functions beyond the lookahead window, got %d", len(doc.Functions))
	}
}

func TestFunctionDocsWithinLookahead(t *testing.T) {
	lines := []string{"--- Documented from a distance."}
	for i := 0; i < 9; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, "function near()")

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function within the lookahead window, got %d", len(doc.Functions))
	}
	if doc.Functions[0].Name != "near" {
		t.Errorf("expected name 'near', got %q", doc.Functions[0].Name)
	}
}

func TestFunctionDocsUnterminatedFence(t *testing.T) {
	lines := []string{
		"--- Renders a greeting.",
		"--- ```lua",
		"-- greet('world')",
		"function M.greet(name)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}
	if len(doc.Functions[0].Examples) != 0 {
		t.Errorf("expected no examples from an unterminated fence, got %+v", doc.Functions[0].Examples)
	}
}

func TestFunctionDocsPrivateFiltered(t *testing.T) {
	lines := []string{
		"--- Thoroughly documented.",
		"--- @param x number # the input",
		"--- @return number # the output",
		"function lib.__internal(x)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 0 {
		t.Fatalf("expected private function to be filtered, got %d records", len(doc.Functions))
	}
}

func TestFunctionDocsOptionalTypeMarker(t *testing.T) {
	lines := []string{
		"--- @param y string?",
		"function pick(y)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}

	expected := []luadoc.Param{{Name: "y", Type: "string?", Optional: true}}
	if !reflect.DeepEqual(doc.Functions[0].Params, expected) {
		t.Errorf("unexpected params: %+v", doc.Functions[0].Params)
	}
}

func TestFunctionDocsFillsUndocumentedParams(t *testing.T) {
	lines := []string{
		"--- @param a number # documented",
		"function M.mix(a, b, c)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := doc.Functions[0].Params
	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(params))
	}
	for _, p := range params[1:] {
		if p.Type != "any" || p.Description != "" || p.Optional {
			t.Errorf("expected default fill for %q, got %+v", p.Name, p)
		}
	}
}

func TestFunctionDocsDropsUnknownParams(t *testing.T) {
	lines := []string{
		"--- @param a number # real",
		"--- @param ghost string # not in the signature",
		"function M.solo(a)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := doc.Functions[0].Params
	if len(params) != 1 {
		t.Fatalf("expected 1 param, got %d: %+v", len(params), params)
	}
	if params[0].Name != "a" {
		t.Errorf("expected param 'a', got %q", params[0].Name)
	}
}

func TestFunctionDocsDuplicateParamKeepsFirst(t *testing.T) {
	lines := []string{
		"--- @param a number # first",
		"--- @param a string # second",
		"function M.one(a)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := doc.Functions[0].Params
	if params[0].Type != "number" || params[0].Description != "first" {
		t.Errorf("expected the first @param to win, got %+v", params[0])
	}
}

func TestFunctionDocsCommentAbortsSearch(t *testing.T) {
	lines := []string{
		"--- Orphaned block.",
		"",
		"--- Attached block.",
		"function M.attached()",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}
	fn := doc.Functions[0]
	if fn.Name != "M.attached" {
		t.Errorf("expected 'M.attached', got %q", fn.Name)
	}
	if len(fn.Description) != 1 || fn.Description[0] != "Attached block." {
		t.Errorf("expected only the second block's description, got %+v", fn.Description)
	}
}

func TestFunctionDocsNegativeLookahead(t *testing.T) {
	_, err := FunctionDocsFromLines([]string{"--- doc"}, WithLookahead(-1))
	if !errors.Is(err, ErrNegativeLookahead) {
		t.Fatalf("expected ErrNegativeLookahead, got %v", err)
	}
}

func TestFunctionDocsZeroLookaheadDisablesAssociation(t *testing.T) {
	lines := []string{
		"--- Right above.",
		"function M.here()",
	}

	doc, err := FunctionDocsFromLines(lines, WithLookahead(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 0 {
		t.Fatalf("expected 0 functions with lookahead 0, got %d", len(doc.Functions))
	}
}

func TestFunctionDocsCustomPrivatePrefix(t *testing.T) {
	lines := []string{
		"--- Hidden by prefix.",
		"function M._hidden()",
		"",
		"--- Visible.",
		"function M.visible()",
	}

	doc, err := FunctionDocsFromLines(lines, WithPrivatePrefix("_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}
	if doc.Functions[0].Name != "M.visible" {
		t.Errorf("expected 'M.visible', got %q", doc.Functions[0].Name)
	}
}

func TestFunctionDocsCustomDefaultReturnType(t *testing.T) {
	lines := []string{
		"--- No return annotation.",
		"function M.fire()",
	}

	doc, err := FunctionDocsFromLines(lines, WithDefaultReturnType("nil"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Functions[0].Returns.Type != "nil" {
		t.Errorf("expected return type 'nil', got %q", doc.Functions[0].Returns.Type)
	}
}

func TestFunctionDocsMultipleBlocks(t *testing.T) {
	lines := []string{
		"--- Adds.",
		"function M.add(a, b)",
		"  return a + b",
		"end",
		"",
		"--- Subtracts.",
		"function M.sub(a, b)",
		"  return a - b",
		"end",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(doc.Functions))
	}
	if doc.Functions[0].Name != "M.add" || doc.Functions[1].Name != "M.sub" {
		t.Errorf("unexpected names: %q, %q", doc.Functions[0].Name, doc.Functions[1].Name)
	}
}

func TestFunctionDocsFromSource(t *testing.T) {
	src := strings.Join([]string{
		"--- Greets someone by name.",
		"--- @param name string # who to greet",
		"--- @return string # the greeting",
		"function M.greet(name)",
		"  return 'hello ' .. name",
		"end",
	}, "\n")

	doc, err := FunctionDocsFromSource(strings.NewReader(src), WithSourcePath("greet.lua"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Path != "greet.lua" {
		t.Errorf("expected path 'greet.lua', got %q", doc.Path)
	}
	if len(doc.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(doc.Functions))
	}
	if doc.Functions[0].Name != "M.greet" {
		t.Errorf("expected 'M.greet', got %q", doc.Functions[0].Name)
	}
}

func TestFunctionDocsReparseIsIdentical(t *testing.T) {
	lines := []string{
		"--- @generic T",
		"--- Maps over a list.",
		"--- @param list table # the input list",
		"--- @param f function # applied to each element",
		"--- @return table # the mapped list",
		"--- ```lua",
		"-- local out = map({1, 2}, double)",
		"--- ```",
		"function M.map(list, f)",
	}

	first, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestFunctionDocsExampleCaptured(t *testing.T) {
	lines := []string{
		"--- Doubles a number.",
		"--- ```",
		"-- double(21)",
		"--- ```",
		"function double(x)",
	}

	doc, err := FunctionDocsFromLines(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	examples := doc.Functions[0].Examples
	if len(examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(examples))
	}
	if examples[0].Lang != "lua" {
		t.Errorf("expected default lang 'lua', got %q", examples[0].Lang)
	}
	if len(examples[0].Code) != 1 || examples[0].Code[0] != "double(21)" {
		t.Errorf("unexpected example code: %+v", examples[0].Code)
	}
}

func TestFileDocFunctionLookup(t *testing.T) {
	doc := &FileDoc{
		Path: "m.lua",
		Functions: []FunctionDoc{
			{Name: "M.add"},
			{Name: "M.sub"},
		},
	}

	if fn := doc.Function("M.sub"); fn == nil || fn.Name != "M.sub" {
		t.Errorf("expected to find M.sub, got %+v", fn)
	}
	if fn := doc.Function("M.missing"); fn != nil {
		t.Errorf("expected nil for a missing name, got %+v", fn)
	}
}
