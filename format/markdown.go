package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/moondoc/lua"
)

// MarkdownEncoder renders documentation records as markdown sections.
type MarkdownEncoder struct {
	w   io.Writer
	doc *lua.FileDoc
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

func (e *MarkdownEncoder) Encode(doc *lua.FileDoc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.doc.Path != "" {
		fmt.Fprintf(&sb, "# %s\n\n", e.doc.Path)
	}
	for i := range e.doc.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeMarkdownFunction(&sb, &e.doc.Functions[i])
	}
	return []byte(sb.String()), nil
}

// MarkdownFunction renders one function's documentation as a standalone
// markdown fragment.
func MarkdownFunction(fn *lua.FunctionDoc) []byte {
	var sb strings.Builder
	writeMarkdownFunction(&sb, fn)
	return []byte(sb.String())
}

func writeMarkdownFunction(sb *strings.Builder, fn *lua.FunctionDoc) {
	fmt.Fprintf(sb, "## %s\n\n", fn.Name)
	fmt.Fprintf(sb, "```lua\nfunction %s(%s)\n```\n\n", fn.Name, strings.Join(paramNames(fn), ", "))
	if len(fn.Description) > 0 {
		sb.WriteString(fn.DescriptionText())
		sb.WriteString("\n\n")
	}
	if len(fn.Generics) > 0 {
		names := make([]string, len(fn.Generics))
		for i, g := range fn.Generics {
			names[i] = "`" + g.Name + "`"
		}
		fmt.Fprintf(sb, "Generics: %s\n\n", strings.Join(names, ", "))
	}
	if len(fn.Params) > 0 {
		sb.WriteString("Parameters:\n\n")
		for _, p := range fn.Params {
			fmt.Fprintf(sb, "- `%s` (%s)", p.Name, p.Type)
			if p.Optional {
				sb.WriteString(", optional")
			}
			if p.Description != "" {
				fmt.Fprintf(sb, ": %s", p.Description)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "Returns `%s`", fn.Returns.Type)
	if fn.Returns.Description != "" {
		fmt.Fprintf(sb, ": %s", fn.Returns.Description)
	}
	sb.WriteString("\n")
	for _, ex := range fn.Examples {
		fmt.Fprintf(sb, "\n```%s\n", ex.Lang)
		for _, line := range ex.Code {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
}
