package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/format"
	"github.com/dhamidi/moondoc/lua"
	"github.com/dhamidi/moondoc/project"
)

func newDocCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "doc <name>",
		Short: "Show documentation for a function by name",
		Long: `Show documentation for a function by qualified name.

The name is matched against every documented function in the project
sources. A bare name matches any function whose qualified name ends
with it, so "trim" finds "strx.trim".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoc(args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown without terminal styling")

	return cmd
}

func runDoc(name string, plain bool) error {
	cfg := loadConfig()
	proj := &project.Project{RootDir: ".", Config: cfg}
	files, err := proj.LuaFiles()
	if err != nil {
		return err
	}

	fn, path, err := findFunction(files, name, cfg.EngineOptions())
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("no documented function matches %q", name)
	}

	md := format.MarkdownFunction(fn)
	md = append(md, fmt.Sprintf("\nDefined in %s, line %d.\n", path, fn.Line)...)

	if plain {
		fmt.Print(string(md))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(string(md))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Print(out)
	return nil
}

// findFunction prefers an exact qualified-name match and falls back to
// a unique suffix match on the final name segment.
func findFunction(files []string, name string, opts []lua.Option) (*lua.FunctionDoc, string, error) {
	type hit struct {
		fn   *lua.FunctionDoc
		path string
	}
	var exact *hit
	var bySuffix []hit

	for _, file := range files {
		doc, err := lua.FunctionDocsFromFile(file, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("extract %s: %w", file, err)
		}
		for i := range doc.Functions {
			fn := &doc.Functions[i]
			switch {
			case fn.Name == name:
				if exact == nil {
					exact = &hit{fn: fn, path: doc.Path}
				}
			case strings.HasSuffix(fn.Name, "."+name), strings.HasSuffix(fn.Name, ":"+name):
				bySuffix = append(bySuffix, hit{fn: fn, path: doc.Path})
			}
		}
	}

	if exact != nil {
		return exact.fn, exact.path, nil
	}
	switch len(bySuffix) {
	case 0:
		return nil, "", nil
	case 1:
		return bySuffix[0].fn, bySuffix[0].path, nil
	default:
		names := make([]string, len(bySuffix))
		for i, h := range bySuffix {
			names[i] = h.fn.Name
		}
		return nil, "", fmt.Errorf("%q is ambiguous: %s", name, strings.Join(names, ", "))
	}
}
