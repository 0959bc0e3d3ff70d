package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/project"
)

const starterConfig = `# moondoc project configuration
title: %s
source:
  - src
out: doc
format: wiki
private_prefix: "__"
lookahead: 10
default_return_type: any
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter moondoc.yaml",
		Long: `Create a starter moondoc.yaml.

If a directory is provided, it is created and initialized; otherwise
the current directory is. The project title defaults to the directory
basename. The source and output directories named in the starter
configuration are created too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir)
		},
	}
}

func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, project.ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	title := filepath.Base(abs)

	if err := os.WriteFile(path, fmt.Appendf(nil, starterConfig, title), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, sub := range []string{"src", "doc"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Join(dir, sub), err)
		}
	}

	fmt.Printf("Created %s\n", path)
	fmt.Printf("Created %s and %s\n", filepath.Join(dir, "src"), filepath.Join(dir, "doc"))
	return nil
}
