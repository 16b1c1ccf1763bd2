// Package file loads machine definitions from CSV, YAML or JSON files on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Extensions lists the supported machine file formats in lookup order.
var Extensions = []string{".csv", ".yaml", ".yml", ".json"}

// Loader implements ports.MachineLoader over a directory.
type Loader struct {
	dir string
}

// New creates a loader rooted at dir. Absolute names passed to Load bypass dir.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads and parses a machine file. name may omit the extension.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Definition, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	def, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if def.Name == "" {
		def.Name = Stem(path)
	}
	return def, nil
}

// List returns the machine files found directly under the loader directory.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !supported(filepath.Ext(e.Name())) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (l *Loader) resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, name)
	}
	if filepath.Ext(path) != "" {
		return path, nil
	}
	for _, ext := range Extensions {
		if _, err := os.Stat(path + ext); err == nil {
			return path + ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
}

// Stem returns the file name without directory and extension.
// The CLI uses it to name trace files.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func supported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Parse decodes a machine document. The format is chosen by extension;
// anything other than .csv and .json is treated as YAML.
func Parse(data []byte, ext string) (*domain.Definition, error) {
	var (
		def *domain.Definition
		err error
	)
	switch strings.ToLower(ext) {
	case ".csv":
		def, err = ParseCSV(strings.NewReader(string(data)))
	case ".json":
		def, err = ParseJSON(data)
	default:
		def, err = ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	if err := normalize(def); err != nil {
		return nil, err
	}
	return def, nil
}

// normalize canonicalises directions ("r" -> "R").
func normalize(def *domain.Definition) error {
	for i, t := range def.Transitions {
		d, err := domain.ParseDirection(string(t.Move))
		if err != nil {
			return fmt.Errorf("transition %d (%s,%s): %w", i+1, t.From, t.Read, err)
		}
		def.Transitions[i].Move = d
	}
	return nil
}
