package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/moondoc/lua"
)

// LineEncoder writes one tab-separated summary line per function,
// suitable for grepping and terminal listings.
type LineEncoder struct {
	w   io.Writer
	doc *lua.FileDoc
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *lua.FileDoc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for i := range e.doc.Functions {
		fn := &e.doc.Functions[i]
		fmt.Fprintf(&sb, "function\t%s\t%s:%d\t(%s)\t%s\n",
			fn.Name,
			e.doc.Path,
			fn.Line,
			strings.Join(paramNames(fn), ", "),
			fn.Returns.Type,
		)
	}
	return []byte(sb.String()), nil
}
