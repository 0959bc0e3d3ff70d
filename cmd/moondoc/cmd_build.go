package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/format"
	"github.com/dhamidi/moondoc/lua"
	"github.com/dhamidi/moondoc/project"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Render documentation for every project source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load()
			if err != nil {
				return err
			}
			return runBuild(proj)
		},
	}
}

func runBuild(proj *project.Project) error {
	files, err := proj.LuaFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .lua files under %s", strings.Join(proj.Config.Source, ", "))
	}

	opts := proj.Config.EngineOptions()
	var docs []*lua.FileDoc
	written := 0
	for _, file := range files {
		doc, err := lua.FunctionDocsFromFile(file, opts...)
		if err != nil {
			return fmt.Errorf("extract %s: %w", file, err)
		}
		docs = append(docs, doc)
		if len(doc.Functions) == 0 {
			continue
		}
		out := proj.OutPath(file)
		if err := writeDoc(doc, out, proj.Config.Format); err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%d functions)\n", file, out, len(doc.Functions))
		written++
	}

	indexPath, err := writeIndex(proj, docs)
	if err != nil {
		return err
	}
	fmt.Printf("index -> %s\n", indexPath)
	fmt.Printf("Documented %d of %d files.\n", written, len(files))
	return nil
}

func writeDoc(doc *lua.FileDoc, out, formatName string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(out), err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	enc, err := format.New(formatName, f)
	if err != nil {
		return err
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	return nil
}

// writeIndex renders an index of every documented function, grouped by
// source file, next to the per-file output.
func writeIndex(proj *project.Project, docs []*lua.FileDoc) (string, error) {
	path := proj.IndexPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	var content []byte
	var err error
	switch proj.Config.Format {
	case "json":
		content, err = jsonIndex(proj, docs)
	case "markdown", "md":
		content = markdownIndex(proj, docs)
	case "line":
		content, err = lineIndex(docs)
	default:
		content = wikiIndex(proj, docs)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func wikiIndex(proj *project.Project, docs []*lua.FileDoc) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", proj.Config.Title)
	for _, doc := range docs {
		if len(doc.Functions) == 0 {
			continue
		}
		page := outPageName(proj, doc.Path)
		fmt.Fprintf(&sb, "\n=== %s ===\n", doc.Path)
		for i := range doc.Functions {
			name := doc.Functions[i].Name
			fmt.Fprintf(&sb, "* [[%s#%s|%s]]\n", page, name, name)
		}
	}
	return []byte(sb.String())
}

func markdownIndex(proj *project.Project, docs []*lua.FileDoc) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", proj.Config.Title)
	for _, doc := range docs {
		if len(doc.Functions) == 0 {
			continue
		}
		rel, err := filepath.Rel(proj.OutDir(), proj.OutPath(doc.Path))
		if err != nil {
			rel = proj.OutPath(doc.Path)
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", doc.Path)
		for i := range doc.Functions {
			name := doc.Functions[i].Name
			fmt.Fprintf(&sb, "- [%s](%s#%s)\n", name, rel, markdownAnchor(name))
		}
	}
	return []byte(sb.String())
}

func jsonIndex(proj *project.Project, docs []*lua.FileDoc) ([]byte, error) {
	type fileIndex struct {
		Path      string   `json:"path"`
		Out       string   `json:"out"`
		Functions []string `json:"functions"`
	}
	index := struct {
		Title string      `json:"title"`
		Files []fileIndex `json:"files"`
	}{Title: proj.Config.Title}

	for _, doc := range docs {
		if len(doc.Functions) == 0 {
			continue
		}
		entry := fileIndex{Path: doc.Path, Out: proj.OutPath(doc.Path)}
		for i := range doc.Functions {
			entry.Functions = append(entry.Functions, doc.Functions[i].Name)
		}
		index.Files = append(index.Files, entry)
	}
	return json.MarshalIndent(index, "", "  ")
}

func lineIndex(docs []*lua.FileDoc) ([]byte, error) {
	var buf bytes.Buffer
	enc := format.NewLineEncoder(&buf)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// outPageName is the per-file output path relative to the output
// directory, without its extension. Wiki links address pages by name.
func outPageName(proj *project.Project, src string) string {
	rel, err := filepath.Rel(proj.OutDir(), proj.OutPath(src))
	if err != nil {
		rel = proj.OutPath(src)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

func markdownAnchor(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
