package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/format"
	"github.com/dhamidi/moondoc/lua"
)

func newExtractCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "extract <file.lua>",
		Short: "Extract documentation records from a single Lua file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if ext := filepath.Ext(filename); ext != ".lua" {
				return fmt.Errorf("expected .lua file, got %s", ext)
			}

			doc, err := lua.FunctionDocsFromFile(filename, loadConfig().EngineOptions()...)
			if err != nil {
				return fmt.Errorf("extract %s: %w", filename, err)
			}

			enc, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json, wiki, markdown, or line")

	return cmd
}
