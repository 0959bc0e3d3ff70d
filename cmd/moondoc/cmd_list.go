package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/format"
	"github.com/dhamidi/moondoc/lua"
	"github.com/dhamidi/moondoc/project"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List documented functions, one line each",
		Long: `List documented functions, one line each.

Without a path the project's configured source directories are
searched; with a path only that file or directory is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runList(path)
		},
	}
}

func runList(path string) error {
	cfg := loadConfig()

	var files []string
	var err error
	switch {
	case path == "":
		proj := &project.Project{RootDir: ".", Config: cfg}
		files, err = proj.LuaFiles()
	default:
		info, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("stat %s: %w", path, statErr)
		}
		if info.IsDir() {
			scoped := cfg
			scoped.Source = []string{"."}
			proj := &project.Project{RootDir: path, Config: scoped}
			files, err = proj.LuaFiles()
		} else {
			if ext := filepath.Ext(path); ext != ".lua" {
				return fmt.Errorf("expected .lua file, got %s", ext)
			}
			files = []string{path}
		}
	}
	if err != nil {
		return err
	}

	enc := format.NewLineEncoder(os.Stdout)
	for _, file := range files {
		doc, err := lua.FunctionDocsFromFile(file, cfg.EngineOptions()...)
		if err != nil {
			return fmt.Errorf("extract %s: %w", file, err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return nil
}
