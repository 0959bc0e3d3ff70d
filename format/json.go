package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/moondoc/lua"
)

type JSONEncoder struct {
	w   io.Writer
	doc *lua.FileDoc
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *lua.FileDoc) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildFileData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonFile struct {
	Path      string         `json:"path,omitempty"`
	Functions []jsonFunction `json:"functions"`
}

type jsonFunction struct {
	Name        string        `json:"name"`
	Line        int           `json:"line"`
	Description []string      `json:"description,omitempty"`
	Params      []jsonParam   `json:"params"`
	Returns     jsonReturn    `json:"returns"`
	Generics    []jsonGeneric `json:"generics,omitempty"`
	Examples    []jsonExample `json:"examples,omitempty"`
	Section     string        `json:"section,omitempty"`
}

type jsonParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
}

type jsonReturn struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type jsonGeneric struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonExample struct {
	Lang string   `json:"lang"`
	Code []string `json:"code"`
}

func (e *JSONEncoder) buildFileData() jsonFile {
	doc := e.doc
	data := jsonFile{
		Path:      doc.Path,
		Functions: make([]jsonFunction, len(doc.Functions)),
	}
	for i := range doc.Functions {
		data.Functions[i] = buildFunction(&doc.Functions[i])
	}
	return data
}

func buildFunction(fn *lua.FunctionDoc) jsonFunction {
	result := jsonFunction{
		Name:        fn.Name,
		Line:        fn.Line,
		Description: fn.Description,
		Params:      make([]jsonParam, len(fn.Params)),
		Returns: jsonReturn{
			Type:        fn.Returns.Type,
			Description: fn.Returns.Description,
		},
		Section: fn.Section,
	}
	for i, p := range fn.Params {
		result.Params[i] = jsonParam{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Optional:    p.Optional,
		}
	}
	for _, g := range fn.Generics {
		result.Generics = append(result.Generics, jsonGeneric{Name: g.Name, Type: g.Type})
	}
	for _, ex := range fn.Examples {
		result.Examples = append(result.Examples, jsonExample{Lang: ex.Lang, Code: ex.Code})
	}
	return result
}
