package luadoc

import (
	"testing"

	"github.com/dhamidi/moondoc/parse"
)

func TestNextBlockAssemblesFullBlock(t *testing.T) {
	lines := []string{
		"--- Adds two numbers.",
		"--- @param a number # first addend",
		"--- @param b number # second addend",
		"--- @return number # the sum",
		"function M.add(a, b)",
	}

	block, next, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}

	if len(block.Description) != 1 || block.Description[0] != "Adds two numbers." {
		t.Errorf("unexpected description: %+v", block.Description)
	}
	if len(block.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(block.Params))
	}
	if block.Params[0].Name != "a" || block.Params[1].Name != "b" {
		t.Errorf("unexpected param names: %+v", block.Params)
	}
	if block.Returns.Type != "number" {
		t.Errorf("expected return type 'number', got %q", block.Returns.Type)
	}
	if next.Pos() != 5 {
		t.Errorf("expected next state at line 5, got %d", next.Pos())
	}
}

func TestNextBlockSkipsLeadingCode(t *testing.T) {
	lines := []string{
		"local M = {}",
		"",
		"--- Greets someone.",
		"function M.greet(name)",
	}

	block, next, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Description) != 1 || block.Description[0] != "Greets someone." {
		t.Errorf("unexpected description: %+v", block.Description)
	}
	if next.Pos() != 4 {
		t.Errorf("expected next state at line 4, got %d", next.Pos())
	}
}

func TestNextBlockWithoutComments(t *testing.T) {
	lines := []string{
		"local M = {}",
		"function M.add(a, b)",
		"return M",
	}

	_, _, ok := NextBlock(parse.NewState(lines), "any")
	if ok {
		t.Fatal("expected no block in comment-free input")
	}
}

func TestNextBlockCapturesExample(t *testing.T) {
	lines := []string{
		"--- Adds two numbers.",
		"--- ```lua",
		"-- local sum = add(1, 2)",
		"-- print(sum)",
		"--- ```",
		"function M.add(a, b)",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(block.Examples))
	}

	example := block.Examples[0]
	if example.Lang != "lua" {
		t.Errorf("expected lang 'lua', got %q", example.Lang)
	}
	if len(example.Code) != 2 {
		t.Fatalf("expected 2 code lines, got %d: %+v", len(example.Code), example.Code)
	}
	if example.Code[0] != "local sum = add(1, 2)" {
		t.Errorf("unexpected first code line: %q", example.Code[0])
	}
	if example.Code[1] != "print(sum)" {
		t.Errorf("unexpected second code line: %q", example.Code[1])
	}
}

func TestNextBlockDropsUnterminatedExample(t *testing.T) {
	lines := []string{
		"--- Adds two numbers.",
		"--- ```lua",
		"-- local sum = add(1, 2)",
		"function M.add(a, b)",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Examples) != 0 {
		t.Errorf("expected unterminated example to be dropped, got %+v", block.Examples)
	}
	if len(block.Description) != 1 || block.Description[0] != "Adds two numbers." {
		t.Errorf("unexpected description: %+v", block.Description)
	}
}

func TestNextBlockResetsContextAfterUnterminatedExample(t *testing.T) {
	lines := []string{
		"--- ```lua",
		"-- local sum = add(1, 2)",
		"function M.add(a, b)",
		"--- Subtracts b from a.",
		"function M.sub(a, b)",
	}

	s := parse.NewState(lines)
	_, next, ok := NextBlock(s, "any")
	if !ok {
		t.Fatal("expected a first block")
	}
	if next.Context().InCodeBlock {
		t.Fatal("expected context to reset between blocks")
	}

	block, _, ok := NextBlock(next, "any")
	if !ok {
		t.Fatal("expected a second block")
	}
	if len(block.Description) != 1 || block.Description[0] != "Subtracts b from a." {
		t.Errorf("expected the second block to parse as plain text, got %+v", block.Description)
	}
}

func TestNextBlockLastReturnWins(t *testing.T) {
	lines := []string{
		"--- @return number # first attempt",
		"--- @return string # second attempt",
		"function M.render()",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if block.Returns.Type != "string" {
		t.Errorf("expected the last @return to win, got %q", block.Returns.Type)
	}
	if block.Returns.Description != "second attempt" {
		t.Errorf("unexpected return description: %q", block.Returns.Description)
	}
}

func TestNextBlockDefaultReturnType(t *testing.T) {
	lines := []string{
		"--- Logs a message.",
		"function M.log(msg)",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "nil")
	if !ok {
		t.Fatal("expected a block")
	}
	if block.Returns.Type != "nil" {
		t.Errorf("expected default return type 'nil', got %q", block.Returns.Type)
	}
}

func TestNextBlockRecordsSection(t *testing.T) {
	lines := []string{
		"--- Renders a template.",
		"--- Behaviour notes:",
		"--- Whitespace is collapsed.",
		"function M.render(tpl)",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if block.Section != "notes" {
		t.Errorf("expected section 'notes', got %q", block.Section)
	}
	for _, line := range block.Description {
		if line == "Behaviour notes:" {
			t.Error("expected the section header to be dropped from the description")
		}
	}
	if len(block.Description) != 2 {
		t.Fatalf("expected 2 description lines, got %d: %+v", len(block.Description), block.Description)
	}
}

func TestNextBlockClosesOnBlankLine(t *testing.T) {
	lines := []string{
		"--- First block.",
		"",
		"--- Second block.",
		"function M.second()",
	}

	block, next, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Description) != 1 || block.Description[0] != "First block." {
		t.Errorf("unexpected first block description: %+v", block.Description)
	}
	if next.Pos() != 2 {
		t.Errorf("expected next state at the blank line, got %d", next.Pos())
	}

	block, _, ok = NextBlock(next, "any")
	if !ok {
		t.Fatal("expected a second block")
	}
	if len(block.Description) != 1 || block.Description[0] != "Second block." {
		t.Errorf("unexpected second block description: %+v", block.Description)
	}
}

func TestNextBlockSkipsEmptyCommentLines(t *testing.T) {
	lines := []string{
		"--- Adds two numbers.",
		"---",
		"--- Works on integers and floats.",
		"function M.add(a, b)",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Description) != 2 {
		t.Fatalf("expected 2 description lines, got %d: %+v", len(block.Description), block.Description)
	}
}

func TestNextBlockKeepsBlankCodeLines(t *testing.T) {
	lines := []string{
		"--- ```lua",
		"-- local a = 1",
		"--",
		"-- local b = 2",
		"--- ```",
		"function M.pair()",
	}

	block, _, ok := NextBlock(parse.NewState(lines), "any")
	if !ok {
		t.Fatal("expected a block")
	}
	if len(block.Examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(block.Examples))
	}
	if len(block.Examples[0].Code) != 3 {
		t.Fatalf("expected 3 code lines, got %d: %+v", len(block.Examples[0].Code), block.Examples[0].Code)
	}
	if block.Examples[0].Code[1] != "" {
		t.Errorf("expected the blank code line to survive, got %q", block.Examples[0].Code[1])
	}
}
