// Package scanner runs documentation scans in the background and keeps
// their results for later lookup.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dhamidi/moondoc/lua"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string
	LuaFiles  []string
	CreatedAt time.Time
}

type Result struct {
	ID        string
	Status    Status
	Request   Request
	Files     []*lua.FileDoc
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (s *Result) ProgressPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Progress * 100) / s.Total
}

// FunctionCount sums the documented functions across all scanned files.
func (s *Result) FunctionCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Functions)
	}
	return n
}

// FunctionEntry pairs a documented function with the file it came from.
type FunctionEntry struct {
	File     *lua.FileDoc
	Function *lua.FunctionDoc
}

type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
	options  []lua.Option
}

// New starts a scanner whose extractions run with opts.
func New(opts ...lua.Option) *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
		options:  opts,
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

type scanResult struct {
	files  []*lua.FileDoc
	errors []string
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	var sr scanResult

	if req.Path != "" {
		sr = s.scanDirectory(req.ID, req.Path)
	} else if len(req.LuaFiles) > 0 {
		sr = s.scanFiles(req.ID, req.LuaFiles)
	} else {
		sr.errors = append(sr.errors, "no path or lua files provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Files = sr.files
	result.Errors = sr.errors
	if len(sr.errors) > 0 && len(sr.files) == 0 {
		result.Status = StatusFailed
		result.Error = sr.errors[0]
	} else {
		result.Status = StatusCompleted
	}
}

func (s *Scanner) scanDirectory(id, path string) scanResult {
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
	sr := s.scanFiles(id, files)
	sr.errors = append(errors, sr.errors...)
	return sr
}

func (s *Scanner) scanFiles(id string, files []string) scanResult {
	s.mu.Lock()
	s.scans[id].Total = len(files)
	s.mu.Unlock()

	var sr scanResult
	for i, file := range files {
		doc, err := lua.FunctionDocsFromFile(file, s.options...)
		if err != nil {
			sr.errors = append(sr.errors, fmt.Sprintf("extract %s: %v", file, err))
		} else {
			sr.files = append(sr.files, doc)
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	return sr
}

func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	s.requests <- req
	return req.ID
}

func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	return result, ok
}

func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		results = append(results, r)
	}
	return results
}

// AllFiles returns every file documented by a completed scan, sorted by
// path.
func (s *Scanner) AllFiles() []*lua.FileDoc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*lua.FileDoc
	for _, scan := range s.scans {
		if scan.Status == StatusCompleted {
			all = append(all, scan.Files...)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})
	return all
}

// AllFunctions returns every documented function from completed scans,
// sorted by name.
func (s *Scanner) AllFunctions() []FunctionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []FunctionEntry
	for _, scan := range s.scans {
		if scan.Status != StatusCompleted {
			continue
		}
		for _, file := range scan.Files {
			for i := range file.Functions {
				all = append(all, FunctionEntry{File: file, Function: &file.Functions[i]})
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Function.Name < all[j].Function.Name
	})
	return all
}

// FindFunction returns the first completed-scan function with the
// given name.
func (s *Scanner) FindFunction(name string) (FunctionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, scan := range s.scans {
		if scan.Status != StatusCompleted {
			continue
		}
		for _, file := range scan.Files {
			if fn := file.Function(name); fn != nil {
				return FunctionEntry{File: file, Function: fn}, true
			}
		}
	}
	return FunctionEntry{}, false
}
