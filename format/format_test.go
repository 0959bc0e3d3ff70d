package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/moondoc/lua"
	"github.com/dhamidi/moondoc/lua/luadoc"
)

func fixture() *lua.FileDoc {
	return &lua.FileDoc{
		Path: "mathx.lua",
		Functions: []lua.FunctionDoc{
			{
				Name:        "M.add",
				Line:        12,
				Description: []string{"Adds two numbers."},
				Params: []luadoc.Param{
					{Name: "a", Type: "number", Description: "first addend"},
					{Name: "b", Type: "number?", Description: "second addend", Optional: true},
				},
				Returns:  luadoc.Return{Type: "number", Description: "the sum"},
				Generics: []luadoc.Generic{{Name: "T", Type: "any"}},
				Examples: []luadoc.Example{{Lang: "lua", Code: []string{"local s = M.add(1, 2)"}}},
			},
		},
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(fixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Path      string `json:"path"`
		Functions []struct {
			Name   string `json:"name"`
			Line   int    `json:"line"`
			Params []struct {
				Name     string `json:"name"`
				Type     string `json:"type"`
				Optional bool   `json:"optional"`
			} `json:"params"`
			Returns struct {
				Type string `json:"type"`
			} `json:"returns"`
		} `json:"functions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if decoded.Path != "mathx.lua" {
		t.Errorf("expected path 'mathx.lua', got %q", decoded.Path)
	}
	if len(decoded.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(decoded.Functions))
	}
	fn := decoded.Functions[0]
	if fn.Name != "M.add" || fn.Line != 12 {
		t.Errorf("unexpected function header: %+v", fn)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if !fn.Params[1].Optional {
		t.Error("expected second param to be optional")
	}
	if fn.Returns.Type != "number" {
		t.Errorf("expected return type 'number', got %q", fn.Returns.Type)
	}
}

func TestWikiEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWikiEncoder(&buf).Encode(fixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"== M.add ==",
		"{{FunctionDoc",
		"|name=M.add",
		"|description=Adds two numbers.",
		"|param1=a",
		"|param1type=number",
		"|param1optional=no",
		"|param2=b",
		"|param2optional=yes",
		"|returns=number",
		"|returndesc=the sum",
		"|generic1=T",
		"}}",
		`<syntaxhighlight lang="lua">`,
		"local s = M.add(1, 2)",
		"</syntaxhighlight>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestMarkdownEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownEncoder(&buf).Encode(fixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# mathx.lua",
		"## M.add",
		"function M.add(a, b)",
		"- `a` (number): first addend",
		"- `b` (number?), optional: second addend",
		"Returns `number`: the sum",
		"```lua",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(fixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "function\tM.add\tmathx.lua:12\t(a, b)\tnumber\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestNewSelectsEncoder(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names() {
		if _, err := New(name, &buf); err != nil {
			t.Errorf("expected encoder for %q, got error: %v", name, err)
		}
	}
	if _, err := New("md", &buf); err != nil {
		t.Errorf("expected 'md' alias to resolve, got error: %v", err)
	}
	if _, err := New("xml", &buf); err == nil {
		t.Error("expected an error for an unknown encoder name")
	}
}
