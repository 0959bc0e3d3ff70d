package lua

import (
	"strings"

	"github.com/dhamidi/moondoc/lua/luadoc"
)

// FunctionDoc is one documented function: the merge of a documentation
// block with the signature it precedes.
type FunctionDoc struct {
	Name        string
	Line        int
	Description []string
	Params      []luadoc.Param
	Returns     luadoc.Return
	Generics    []luadoc.Generic
	Examples    []luadoc.Example
	Section     string
}

// DescriptionText joins the description fragments into one text.
func (f *FunctionDoc) DescriptionText() string {
	return strings.Join(f.Description, "\n")
}

// FileDoc collects the documentation records extracted from one source file.
type FileDoc struct {
	Path      string
	Functions []FunctionDoc
}

// Function returns the record named name, or nil.
func (f *FileDoc) Function(name string) *FunctionDoc {
	for i := range f.Functions {
		if f.Functions[i].Name == name {
			return &f.Functions[i]
		}
	}
	return nil
}
