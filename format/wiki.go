package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/moondoc/lua"
)

// WikiEncoder renders documentation records as wiki template markup:
// one level-2 heading per function followed by a FunctionDoc template
// invocation and syntaxhighlight blocks for examples.
type WikiEncoder struct {
	w   io.Writer
	doc *lua.FileDoc
}

func NewWikiEncoder(w io.Writer) *WikiEncoder {
	return &WikiEncoder{w: w}
}

func (e *WikiEncoder) Encode(doc *lua.FileDoc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *WikiEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for i := range e.doc.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeWikiFunction(&sb, &e.doc.Functions[i])
	}
	return []byte(sb.String()), nil
}

func writeWikiFunction(sb *strings.Builder, fn *lua.FunctionDoc) {
	fmt.Fprintf(sb, "== %s ==\n", fn.Name)
	sb.WriteString("{{FunctionDoc\n")
	fmt.Fprintf(sb, "|name=%s\n", fn.Name)
	if desc := strings.Join(fn.Description, " "); desc != "" {
		fmt.Fprintf(sb, "|description=%s\n", desc)
	}
	if fn.Section != "" {
		fmt.Fprintf(sb, "|section=%s\n", fn.Section)
	}
	for i, p := range fn.Params {
		n := i + 1
		fmt.Fprintf(sb, "|param%d=%s\n", n, p.Name)
		fmt.Fprintf(sb, "|param%dtype=%s\n", n, p.Type)
		if p.Description != "" {
			fmt.Fprintf(sb, "|param%ddesc=%s\n", n, p.Description)
		}
		fmt.Fprintf(sb, "|param%doptional=%s\n", n, yesNo(p.Optional))
	}
	fmt.Fprintf(sb, "|returns=%s\n", fn.Returns.Type)
	if fn.Returns.Description != "" {
		fmt.Fprintf(sb, "|returndesc=%s\n", fn.Returns.Description)
	}
	for i, g := range fn.Generics {
		fmt.Fprintf(sb, "|generic%d=%s\n", i+1, g.Name)
	}
	sb.WriteString("}}\n")
	for _, ex := range fn.Examples {
		fmt.Fprintf(sb, "<syntaxhighlight lang=%q>\n", ex.Lang)
		for _, line := range ex.Code {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("</syntaxhighlight>\n")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
