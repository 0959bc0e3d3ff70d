package lua

import (
	"regexp"
	"strings"
	"unicode"
)

// Signature is a function definition recognized on a single source line.
type Signature struct {
	Name   string
	Params []string
}

var (
	funcStmtRe   = regexp.MustCompile(`\bfunction\s+([A-Za-z_]\w*(?:[.:][A-Za-z_]\w*)*)\s*\(([^)]*)\)`)
	funcAssignRe = regexp.MustCompile(`\b([A-Za-z_]\w*(?:[.:][A-Za-z_]\w*)*)\s*=\s*function\s*\(([^)]*)\)`)
)

// controlKeywords are statement keywords that disqualify a line: when
// one appears before the definition, the function literal belongs to a
// control-flow construct rather than a named definition.
var controlKeywords = map[string]bool{
	"if":     true,
	"elseif": true,
	"else":   true,
	"then":   true,
	"do":     true,
	"while":  true,
	"for":    true,
	"until":  true,
	"repeat": true,
	"return": true,
	"in":     true,
	"and":    true,
	"or":     true,
	"not":    true,
}

// ExtractSignature recognizes a function definition on line. Two shapes
// are accepted:
//
//	function lib.foo(a, b)
//	lib.foo = function(a, b)
//
// Definitions behind a control-flow keyword are rejected. The match is
// a line-level heuristic and never fails hard on odd input.
func ExtractSignature(line string) (Signature, bool) {
	for _, re := range []*regexp.Regexp{funcStmtRe, funcAssignRe} {
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		if insideControlFlow(line[:loc[0]]) {
			continue
		}
		params := ""
		if loc[4] >= 0 {
			params = line[loc[4]:loc[5]]
		}
		return Signature{Name: line[loc[2]:loc[3]], Params: splitParams(params)}, true
	}
	return Signature{}, false
}

func insideControlFlow(prefix string) bool {
	words := strings.FieldsFunc(prefix, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, word := range words {
		if controlKeywords[word] {
			return true
		}
	}
	return false
}

func splitParams(list string) []string {
	var params []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}

// isPrivate reports whether the final name segment carries the private
// prefix. An empty prefix disables the check.
func isPrivate(name, prefix string) bool {
	if prefix == "" {
		return false
	}
	last := name
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		last = name[i+1:]
	}
	return strings.HasPrefix(last, prefix)
}
