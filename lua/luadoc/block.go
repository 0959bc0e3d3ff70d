package luadoc

import "github.com/dhamidi/moondoc/parse"

// Example is a fenced code sample taken from a documentation block.
type Example struct {
	Lang string
	Code []string
}

// Block is one assembled documentation block: the contiguous run of
// comment lines immediately preceding a definition.
type Block struct {
	Description []string
	Params      []Param
	Returns     Return
	Generics    []Generic
	Examples    []Example
	Section     string
}

// NextBlock skips ahead to the next comment run, parses it, and
// assembles the tokens into a Block. The returned state points at the
// first line after the run, with a fresh context. ok is false when no
// further comment line exists.
func NextBlock(s parse.State, defaultReturn string) (Block, parse.State, bool) {
	for {
		line, more := s.Current()
		if !more {
			return Block{}, s, false
		}
		if IsComment(line) {
			break
		}
		s = s.Advance()
	}
	r := parse.Many(TokenLine())(s)
	block := assemble(r.Value, defaultReturn)
	return block, r.Next.WithContext(parse.Context{}), true
}

// assemble folds a token run into a Block. Repeated @return lines
// replace each other; an example left open at the end of the run is
// discarded.
func assemble(tokens []Token, defaultReturn string) Block {
	block := Block{Returns: Return{Type: defaultReturn}}
	var open *Example
	for _, tok := range tokens {
		switch t := tok.(type) {
		case Text:
			if open != nil {
				open.Code = append(open.Code, t.Content)
			} else if t.Content != "" {
				block.Description = append(block.Description, t.Content)
			}
		case Param:
			block.Params = append(block.Params, t)
		case Return:
			block.Returns = t
		case Generic:
			block.Generics = append(block.Generics, t)
		case CodeStart:
			open = &Example{Lang: t.Lang}
		case CodeEnd:
			if open != nil {
				block.Examples = append(block.Examples, *open)
				open = nil
			}
		case Section:
			block.Section = t.Name
		}
	}
	return block
}
