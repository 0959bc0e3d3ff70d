package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/moondoc/lua"
)

// Encoder renders the documentation records of one file.
type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *lua.FileDoc) error
}

// New returns the encoder registered under name, writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "wiki":
		return NewWikiEncoder(w), nil
	case "markdown", "md":
		return NewMarkdownEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("format: unknown encoder %q", name)
}

// Names lists the registered encoder names.
func Names() []string {
	return []string{"json", "wiki", "markdown", "line"}
}

func paramNames(fn *lua.FunctionDoc) []string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	return names
}
