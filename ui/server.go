// Package ui serves the documentation browser: scans are submitted and
// tracked over HTTP, and every documented function gets its own page.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/dhamidi/moondoc/lua"
	"github.com/dhamidi/moondoc/lua/scanner"
)

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	scanner    *scanner.Scanner
	staticFS   fs.FS
	templates  *template.Template
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(opts ...lua.Option) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"signature": func(fn *lua.FunctionDoc) string {
			names := make([]string, len(fn.Params))
			for i, p := range fn.Params {
				names[i] = p.Name
			}
			return fmt.Sprintf("%s(%s)", fn.Name, strings.Join(names, ", "))
		},
		"describe": func(fragments []string) template.HTML {
			var lines []string
			for _, f := range fragments {
				lines = append(lines, template.HTMLEscapeString(f))
			}
			return template.HTML(strings.Join(lines, "<br>"))
		},
		"hasDoc": func(fragments []string) bool {
			return len(fragments) > 0
		},
		"codeText": func(code []string) string {
			return strings.Join(code, "\n")
		},
		"yesNo": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		scanner:    scanner.New(opts...),
		staticFS:   staticFS,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /scans/{id}", s.handleGetScan)
	s.mux.HandleFunc("GET /f/{functionName...}", s.handleFunction)
	s.mux.HandleFunc("GET /sidebar", s.handleSidebar)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// render re-parses the template set on every request so that edits to
// an ui/templates overlay show up without a restart.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanner.Request

	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Path = r.FormValue("path")
		if luaFiles := r.Form["lua_files"]; len(luaFiles) > 0 {
			req.LuaFiles = luaFiles
		}
	}

	if req.Path == "" && len(req.LuaFiles) == 0 {
		http.Error(w, "must provide path or lua_files", http.StatusBadRequest)
		return
	}

	id := s.scanner.Submit(req)
	http.Redirect(w, r, "/scans/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}

	accept := r.Header.Get("Accept")
	if accept == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	s.render(w, "scan.html", result)
}

const maxSidebarResults = 20

type SidebarData struct {
	Functions    []scanner.FunctionEntry
	ActiveName   string
	Query        string
	TotalMatches int
	HasMore      bool
}

type FunctionViewData struct {
	Sidebar SidebarData
	Active  *lua.FunctionDoc
	File    *lua.FileDoc
}

func (s *Server) sidebarData(query, activeName string) SidebarData {
	all := s.scanner.AllFunctions()

	data := SidebarData{ActiveName: activeName, Query: query}
	lowered := strings.ToLower(query)
	for _, entry := range all {
		if lowered != "" && !strings.Contains(strings.ToLower(entry.Function.Name), lowered) {
			continue
		}
		data.TotalMatches++
		if len(data.Functions) < maxSidebarResults {
			data.Functions = append(data.Functions, entry)
		}
	}
	data.HasMore = data.TotalMatches > maxSidebarResults
	return data
}

func (s *Server) handleFunction(w http.ResponseWriter, r *http.Request) {
	functionName := r.PathValue("functionName")

	data := FunctionViewData{
		Sidebar: s.sidebarData("", functionName),
	}

	if functionName != "" {
		entry, ok := s.scanner.FindFunction(functionName)
		if !ok {
			http.Error(w, "function not found", http.StatusNotFound)
			return
		}
		data.Active = entry.Function
		data.File = entry.File
	}

	s.render(w, "function.html", data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		if len(s.scanner.AllFunctions()) > 0 {
			http.Redirect(w, r, "/f/", http.StatusSeeOther)
			return
		}
	}

	data := struct {
		Scans []*scanner.Result
	}{
		Scans: s.scanner.List(),
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	activeName := r.URL.Query().Get("active")
	s.render(w, "_sidebar.html", s.sidebarData(query, activeName))
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers files from primaryPath on disk and falls back to
// the embedded copy, so a checkout can restyle the UI without a rebuild.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
