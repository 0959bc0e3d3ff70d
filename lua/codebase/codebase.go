// Package codebase keeps an up-to-date documentation index over a tree
// of Lua source files and serves it over LSP.
package codebase

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dhamidi/moondoc/lua"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	options []lua.Option
	files   map[string]*FileInfo
	docs    []*lua.FileDoc
}

type FileInfo struct {
	Path     string
	Content  []byte
	Doc      *lua.FileDoc
	ParseErr error
}

func New(rootDir string, opts ...lua.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		options: opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return c.ScanDir(c.rootDir)
}

func (c *Codebase) ScanDir(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".lua" {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) error {
	opts := append([]lua.Option{lua.WithSourcePath(path)}, c.options...)
	doc, parseErr := lua.FunctionDocsFromSource(bytes.NewReader(content), opts...)

	c.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		Doc:      doc,
		ParseErr: parseErr,
	}

	c.rebuildDocsLocked()
	return parseErr
}

func (c *Codebase) rebuildDocsLocked() {
	var all []*lua.FileDoc
	for _, f := range c.files {
		if f.Doc != nil {
			all = append(all, f.Doc)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})
	c.docs = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildDocsLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) AllDocs() []*lua.FileDoc {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.docs
}

func (c *Codebase) FindFunction(name string) *lua.FunctionDoc {
	if name == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, doc := range c.docs {
		if fn := doc.Function(name); fn != nil {
			return fn
		}
	}
	return nil
}

// FunctionAt returns the documented function whose definition line is
// the closest one at or before line in the given file.
func (c *Codebase) FunctionAt(path string, line int) *lua.FunctionDoc {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f := c.files[path]
	if f == nil || f.Doc == nil {
		return nil
	}

	var best *lua.FunctionDoc
	for i := range f.Doc.Functions {
		fn := &f.Doc.Functions[i]
		if fn.Line > line {
			continue
		}
		if best == nil || fn.Line > best.Line {
			best = fn
		}
	}
	return best
}
