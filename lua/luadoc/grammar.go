package luadoc

import (
	"regexp"
	"strings"

	"github.com/dhamidi/moondoc/parse"
)

// DefaultLang is the language tag assumed for fences that omit one.
const DefaultLang = "lua"

var (
	genericRe = regexp.MustCompile(`^\s*---?\s*@generic\s+([A-Za-z_][A-Za-z0-9_]*)`)
	paramRe   = regexp.MustCompile(`^\s*---?\s*@param\s+(\S+)(?:\s+(.*))?$`)
	returnRe  = regexp.MustCompile(`^\s*---?\s*@return\s+(\S+)(?:\s+(.*))?$`)
	fenceRe   = regexp.MustCompile("^\\s*---?\\s*```\\s*([A-Za-z0-9_+#.-]*)\\s*$")
)

// reservedSections maps recognized section headers to the section name
// recorded on the block. Header lines themselves produce no description.
var reservedSections = map[string]string{
	"behaviour notes": "notes",
	"behavior notes":  "notes",
	"usage":           "usage",
}

// IsComment reports whether line is a Lua comment line, rich (---) or
// plain (--).
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "--")
}

// commentText strips the comment marker and one separating space,
// preserving any further indentation.
func commentText(line string) string {
	t := strings.TrimLeft(line, " \t")
	t = strings.TrimPrefix(t, "--")
	t = strings.TrimPrefix(t, "-")
	t = strings.TrimPrefix(t, " ")
	return t
}

// TokenLine classifies a single comment line. Outside a code fence the
// alternatives apply in fixed precedence: @generic, @param, @return,
// fence, section header, plain text. Inside a fence only the closing
// fence is recognized; everything else is raw code. The parser fails on
// non-comment lines, closing the surrounding block.
func TokenLine() parse.Parser[Token] {
	annotation := parse.Choice(
		genericLine(),
		paramLine(),
		returnLine(),
		fenceLine(),
		sectionLine(),
		textLine(),
	)
	code := codeLine()
	return func(s parse.State) parse.Result[Token] {
		if s.Context().InCodeBlock {
			return code(s)
		}
		return annotation(s)
	}
}

func genericLine() parse.Parser[Token] {
	return parse.Map(func(groups []string) Token {
		return Generic{Name: groups[1], Type: "any"}
	}, parse.Match(genericRe))
}

func paramLine() parse.Parser[Token] {
	return parse.Map(func(groups []string) Token {
		return paramFromParts(groups[1], groups[2])
	}, parse.Match(paramRe))
}

// paramFromParts interprets the words after the parameter name: an
// optional type token, an optional "?" marker, and a description. The
// marker may trail the name (stripped) or the type (kept as part of the
// type text). The description usually follows a "#" delimiter; without
// one, the words after the type are taken instead.
func paramFromParts(name, rest string) Param {
	p := Param{Name: name, Type: "any"}
	if strings.HasSuffix(p.Name, "?") {
		p.Name = strings.TrimSuffix(p.Name, "?")
		p.Optional = true
	}

	typePart := rest
	if i := strings.Index(rest, "#"); i >= 0 {
		typePart = rest[:i]
		p.Description = strings.TrimSpace(rest[i+1:])
	}

	fields := strings.Fields(typePart)
	if len(fields) > 0 {
		p.Type = fields[0]
		if strings.HasSuffix(p.Type, "?") {
			p.Optional = true
		}
		if p.Description == "" && len(fields) > 1 {
			p.Description = strings.Join(fields[1:], " ")
		}
	}

	return p
}

func returnLine() parse.Parser[Token] {
	return parse.Map(func(groups []string) Token {
		desc := strings.TrimSpace(groups[2])
		desc = strings.TrimSpace(strings.TrimPrefix(desc, "#"))
		return Return{Type: groups[1], Description: desc}
	}, parse.Match(returnRe))
}

func fenceLine() parse.Parser[Token] {
	return func(s parse.State) parse.Result[Token] {
		r := parse.Match(fenceRe)(s)
		if !r.Ok() {
			return parse.Failure[Token]()
		}
		lang := r.Value[1]
		if lang == "" {
			lang = DefaultLang
		}
		ctx := s.Context()
		ctx.InCodeBlock = true
		ctx.CodeLang = lang
		return parse.Success[Token](CodeStart{Lang: lang}, r.Next.WithContext(ctx))
	}
}

func sectionLine() parse.Parser[Token] {
	return func(s parse.State) parse.Result[Token] {
		line, ok := s.Current()
		if !ok || !IsComment(line) {
			return parse.Failure[Token]()
		}
		header := strings.TrimSpace(commentText(line))
		header = strings.TrimSuffix(header, ":")
		name, reserved := reservedSections[strings.ToLower(header)]
		if !reserved {
			return parse.Failure[Token]()
		}
		ctx := s.Context()
		ctx.Section = name
		return parse.Success[Token](Section{Name: name}, s.Advance().WithContext(ctx))
	}
}

func textLine() parse.Parser[Token] {
	return func(s parse.State) parse.Result[Token] {
		line, ok := s.Current()
		if !ok || !IsComment(line) {
			return parse.Failure[Token]()
		}
		content := strings.TrimSpace(commentText(line))
		return parse.Success[Token](Text{Content: content}, s.Advance())
	}
}

// codeLine consumes comment lines inside an open fence. A bare closing
// fence ends the code block and resets the context; any other comment
// line is kept verbatim as code.
func codeLine() parse.Parser[Token] {
	return func(s parse.State) parse.Result[Token] {
		line, ok := s.Current()
		if !ok || !IsComment(line) {
			return parse.Failure[Token]()
		}
		content := commentText(line)
		if strings.TrimSpace(content) == "```" {
			ctx := s.Context()
			ctx.InCodeBlock = false
			ctx.CodeLang = ""
			return parse.Success[Token](CodeEnd{}, s.Advance().WithContext(ctx))
		}
		return parse.Success[Token](Text{Content: content}, s.Advance())
	}
}
