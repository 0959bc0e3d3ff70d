// Package project loads moondoc.yaml and resolves the files a
// documentation build works on.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/moondoc/lua"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "moondoc.yaml"

// Config is the resolved project configuration. All fields carry their
// defaults after loading.
type Config struct {
	Title             string
	Source            []string
	Out               string
	Format            string
	PrivatePrefix     string
	Lookahead         int
	DefaultReturnType string
}

// rawConfig mirrors the yaml file. Pointer fields distinguish an absent
// key from an explicit zero: lookahead 0 and an empty private prefix
// are meaningful settings.
type rawConfig struct {
	Title             string   `yaml:"title"`
	Source            []string `yaml:"source"`
	Out               string   `yaml:"out"`
	Format            string   `yaml:"format"`
	PrivatePrefix     *string  `yaml:"private_prefix"`
	Lookahead         *int     `yaml:"lookahead"`
	DefaultReturnType string   `yaml:"default_return_type"`
}

// Project is a documentation project rooted at a directory holding a
// moondoc.yaml.
type Project struct {
	RootDir string
	Config  Config
}

// DefaultConfig returns the configuration used when no moondoc.yaml
// exists.
func DefaultConfig() Config {
	return Config{
		Source:            []string{"."},
		Out:               "doc",
		Format:            "wiki",
		PrivatePrefix:     lua.DefaultPrivatePrefix,
		Lookahead:         lua.DefaultLookahead,
		DefaultReturnType: lua.DefaultReturnType,
	}
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads the project rooted at rootDir. A negative lookahead is
// rejected here, before any source file is read.
func LoadFrom(rootDir string) (*Project, error) {
	path := filepath.Join(rootDir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if raw.Title != "" {
		cfg.Title = raw.Title
	}
	if len(raw.Source) > 0 {
		cfg.Source = raw.Source
	}
	if raw.Out != "" {
		cfg.Out = raw.Out
	}
	if raw.Format != "" {
		cfg.Format = raw.Format
	}
	if raw.PrivatePrefix != nil {
		cfg.PrivatePrefix = *raw.PrivatePrefix
	}
	if raw.Lookahead != nil {
		cfg.Lookahead = *raw.Lookahead
	}
	if raw.DefaultReturnType != "" {
		cfg.DefaultReturnType = raw.DefaultReturnType
	}
	if cfg.Lookahead < 0 {
		return nil, fmt.Errorf("%s: %w", path, lua.ErrNegativeLookahead)
	}
	if cfg.Title == "" {
		abs, err := filepath.Abs(rootDir)
		if err == nil {
			cfg.Title = filepath.Base(abs)
		}
	}

	return &Project{RootDir: rootDir, Config: cfg}, nil
}

// EngineOptions bridges the configuration to extraction options.
func (c Config) EngineOptions() []lua.Option {
	return []lua.Option{
		lua.WithPrivatePrefix(c.PrivatePrefix),
		lua.WithLookahead(c.Lookahead),
		lua.WithDefaultReturnType(c.DefaultReturnType),
	}
}

// LuaFiles returns all .lua files under the configured source
// directories, sorted. Dot directories are skipped.
func (p *Project) LuaFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, src := range p.Config.Source {
		dir := filepath.Join(p.RootDir, src)
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != dir {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".lua") {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan lua files in %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// OutDir returns the output directory for rendered documentation.
func (p *Project) OutDir() string {
	return filepath.Join(p.RootDir, p.Config.Out)
}

// OutPath maps a source file to its output file: the source path
// mirrored under the output directory with the format's extension.
func (p *Project) OutPath(src string) string {
	rel, err := filepath.Rel(p.RootDir, src)
	if err != nil {
		rel = src
	}
	ext := formatExtension(p.Config.Format)
	rel = strings.TrimSuffix(rel, ".lua") + ext
	return filepath.Join(p.OutDir(), rel)
}

// IndexPath returns the path of the documentation index file written
// alongside the per-file output.
func (p *Project) IndexPath() string {
	return filepath.Join(p.OutDir(), "index"+formatExtension(p.Config.Format))
}

func formatExtension(format string) string {
	switch format {
	case "markdown", "md":
		return ".md"
	case "json":
		return ".json"
	case "line":
		return ".txt"
	default:
		return ".wiki"
	}
}
