package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/lua"
)

func newScanCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory or file for documented Lua functions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], timeout)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	return cmd
}

func runScan(path string, timeout time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	opts := loadConfig().EngineOptions()

	var docs []*lua.FileDoc
	var errors []string

	if info.IsDir() {
		docs, errors = scanDirectory(path, timeout, opts)
	} else if filepath.Ext(path) == ".lua" {
		docs, errors = scanSingleFile(path, timeout, opts)
	} else {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	functions := 0
	for _, doc := range docs {
		functions += len(doc.Functions)
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Files scanned: %d\n", len(docs))
	fmt.Printf("Functions found: %d\n", functions)
	fmt.Printf("Errors: %d\n", len(errors))
	for _, e := range errors {
		fmt.Printf("  - %s\n", e)
	}
	return nil
}

func scanSingleFile(path string, timeout time.Duration, opts []lua.Option) ([]*lua.FileDoc, []string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	var doc *lua.FileDoc
	var parseErr error

	go func() {
		defer close(done)
		doc, parseErr = lua.FunctionDocsFromFile(path, opts...)
	}()

	select {
	case <-done:
		if parseErr != nil {
			fmt.Printf("[ERROR] %s: %v\n", path, parseErr)
			return nil, []string{fmt.Sprintf("extract %s: %v", path, parseErr)}
		}
		fmt.Printf("[OK] %s (%d functions)\n", path, len(doc.Functions))
		return []*lua.FileDoc{doc}, nil
	case <-ctx.Done():
		fmt.Printf("[TIMEOUT] %s\n", path)
		return nil, []string{fmt.Sprintf("timeout extracting %s", path)}
	}
}

func scanDirectory(path string, timeout time.Duration, opts []lua.Option) ([]*lua.FileDoc, []string) {
	var files []string
	var errors []string

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if !info.IsDir() && filepath.Ext(p) == ".lua" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
	}

	fmt.Printf("Found %d files to scan\n", len(files))

	var docs []*lua.FileDoc
	for i, file := range files {
		fmt.Printf("[%d/%d] ", i+1, len(files))
		fileDocs, fileErrors := scanSingleFile(file, timeout, opts)
		docs = append(docs, fileDocs...)
		errors = append(errors, fileErrors...)
	}

	return docs, errors
}
