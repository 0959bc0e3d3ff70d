// Package lua extracts function documentation from Lua source files by
// pairing annotation comment blocks with the definitions they precede.
package lua

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/moondoc/lua/luadoc"
	"github.com/dhamidi/moondoc/parse"
)

// ErrNegativeLookahead reports a negative lookahead setting. It is
// returned before any input is read.
var ErrNegativeLookahead = errors.New("lua: lookahead must not be negative")

const (
	DefaultPrivatePrefix = "__"
	DefaultLookahead     = 10
	DefaultReturnType    = "any"
)

type Option func(*extractor)

type extractor struct {
	path          string
	privatePrefix string
	lookahead     int
	defaultReturn string
}

// WithSourcePath records path on the resulting FileDoc.
func WithSourcePath(path string) Option {
	return func(e *extractor) {
		e.path = path
	}
}

// WithPrivatePrefix changes the name prefix that marks a function as
// private. Private functions are dropped from the output.
func WithPrivatePrefix(prefix string) Option {
	return func(e *extractor) {
		e.privatePrefix = prefix
	}
}

// WithLookahead changes how many lines after a documentation block are
// searched for the matching definition. Zero disables the association
// entirely; negative values make extraction fail with
// ErrNegativeLookahead.
func WithLookahead(n int) Option {
	return func(e *extractor) {
		e.lookahead = n
	}
}

// WithDefaultReturnType changes the return type recorded for blocks
// without an @return annotation.
func WithDefaultReturnType(typ string) Option {
	return func(e *extractor) {
		e.defaultReturn = typ
	}
}

func newExtractor(opts ...Option) (*extractor, error) {
	e := &extractor{
		privatePrefix: DefaultPrivatePrefix,
		lookahead:     DefaultLookahead,
		defaultReturn: DefaultReturnType,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.lookahead < 0 {
		return nil, ErrNegativeLookahead
	}
	return e, nil
}

// FunctionDocsFromLines extracts documentation records from source
// lines. Blocks that cannot be paired with a function definition are
// dropped; malformed annotations degrade to description text. The
// only error condition is invalid configuration.
func FunctionDocsFromLines(lines []string, opts ...Option) (*FileDoc, error) {
	e, err := newExtractor(opts...)
	if err != nil {
		return nil, err
	}
	doc := &FileDoc{Path: e.path}
	s := parse.NewState(lines)
	for {
		block, next, ok := luadoc.NextBlock(s, e.defaultReturn)
		if !ok {
			break
		}
		if sig, line, after, found := e.findFunction(next); found {
			if !isPrivate(sig.Name, e.privatePrefix) {
				doc.Functions = append(doc.Functions, mergeBlock(block, sig, line))
			}
			next = after
		}
		s = next
	}
	return doc, nil
}

// FunctionDocsFromSource reads r fully and extracts documentation records.
func FunctionDocsFromSource(r io.Reader, opts ...Option) (*FileDoc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FunctionDocsFromLines(splitLines(string(data)), opts...)
}

// FunctionDocsFromFile extracts documentation records from the file at
// path. The path is recorded on the result.
func FunctionDocsFromFile(path string, opts ...Option) (*FileDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return FunctionDocsFromSource(f, append(opts, WithSourcePath(path))...)
}

// findFunction scans forward from the line that closed a documentation
// block, looking for a function definition. The closing line itself is
// the first candidate; blank lines count against the lookahead window.
// A comment line aborts the search, since it starts the next block.
func (e *extractor) findFunction(s parse.State) (Signature, int, parse.State, bool) {
	cur := s
	for i := 0; i < e.lookahead; i++ {
		line, ok := cur.Current()
		if !ok {
			break
		}
		if luadoc.IsComment(line) {
			break
		}
		if sig, ok := ExtractSignature(line); ok {
			return sig, cur.Pos(), cur.Advance(), true
		}
		cur = cur.Advance()
	}
	return Signature{}, 0, s, false
}

// mergeBlock reconciles a documentation block with its signature.
// Parameters follow signature order: documented ones are matched by
// exact name, undocumented ones are filled with defaults, and
// annotations naming no signature parameter are dropped. A repeated
// @param for the same name keeps the first occurrence.
func mergeBlock(block luadoc.Block, sig Signature, line int) FunctionDoc {
	documented := make(map[string]luadoc.Param, len(block.Params))
	for _, p := range block.Params {
		if _, seen := documented[p.Name]; !seen {
			documented[p.Name] = p
		}
	}
	params := make([]luadoc.Param, 0, len(sig.Params))
	for _, name := range sig.Params {
		if p, ok := documented[name]; ok {
			params = append(params, p)
		} else {
			params = append(params, luadoc.Param{Name: name, Type: "any"})
		}
	}
	return FunctionDoc{
		Name:        sig.Name,
		Line:        line,
		Description: block.Description,
		Params:      params,
		Returns:     block.Returns,
		Generics:    block.Generics,
		Examples:    block.Examples,
		Section:     block.Section,
	}
}

func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
