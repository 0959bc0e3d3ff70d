// Package luadoc parses Lua documentation comments into typed tokens
// and assembles them into documentation blocks.
package luadoc

// Token is the interface implemented by all annotation tokens.
type Token interface {
	token()
}

// Generic represents a @generic annotation naming a type parameter.
// The type is never parsed from the source; it always defaults to "any".
type Generic struct {
	Name string
	Type string
}

func (Generic) token() {}

// Param represents a @param annotation.
type Param struct {
	Name        string
	Type        string
	Description string
	Optional    bool
}

func (Param) token() {}

// Return represents a @return annotation.
type Return struct {
	Type        string
	Description string
}

func (Return) token() {}

// CodeStart represents the opening fence of an example code block.
type CodeStart struct {
	Lang string
}

func (CodeStart) token() {}

// CodeEnd represents the closing fence of an example code block.
type CodeEnd struct{}

func (CodeEnd) token() {}

// Text represents a plain description line, or a raw code line when it
// appears between CodeStart and CodeEnd.
type Text struct {
	Content string
}

func (Text) token() {}

// Section marks a reserved section header line. Section headers carry
// no description content of their own.
type Section struct {
	Name string
}

func (Section) token() {}
