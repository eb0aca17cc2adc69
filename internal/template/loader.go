package template

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// Info summarizes a loaded template for display
type Info struct {
	Name        string
	Version     string
	Description string
	Steps       int
}

// Loader keeps a name-keyed catalog of templates read from a directory.
// Template names come from the file stem. A file that fails to parse or
// validate is skipped with a logged warning; the rest of the catalog
// still loads. A missing directory yields an empty catalog.
type Loader struct {
	dir       string
	templates map[string]*Template
}

// LoaderConfig holds Loader dependencies
type LoaderConfig struct {
	Dir string
}

// NewLoader creates a loader and loads the catalog from disk
func NewLoader(cfg *LoaderConfig) *Loader {
	l := &Loader{
		dir:       cfg.Dir,
		templates: make(map[string]*Template),
	}
	l.loadAll()
	return l
}

func (l *Loader) loadAll() {
	l.templates = make(map[string]*Template)

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		// No templates directory just means no templates
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		tmpl, err := loadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: failed to load template '%s': %v", name, err)
			continue
		}

		l.templates[name] = tmpl
	}
}

func loadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to read template file %s", path)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, dnderr.InvalidArgumentf("template file %s is empty", path)
	}

	tmpl, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := tmpl.Validate(); err != nil {
		return nil, dnderr.Wrap(err, "template validation failed")
	}

	return tmpl, nil
}

// Get returns a template by name, or nil when absent
func (l *Loader) Get(name string) *Template {
	return l.templates[name]
}

// Names returns the loaded template names, sorted
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns display information for a template, or nil when absent
func (l *Loader) Info(name string) *Info {
	tmpl := l.Get(name)
	if tmpl == nil {
		return nil
	}

	return &Info{
		Name:        tmpl.Name,
		Version:     tmpl.Version,
		Description: tmpl.Description,
		Steps:       tmpl.StepCount(),
	}
}

// Count returns the number of loaded templates
func (l *Loader) Count() int {
	return len(l.templates)
}

// Reload replaces the whole catalog from disk and reports how many loaded
func (l *Loader) Reload() string {
	l.loadAll()
	return fmt.Sprintf("Reloaded %d templates", len(l.templates))
}

// ValidateFile checks a candidate template file without adding it to the catalog
func ValidateFile(path string) error {
	_, err := loadFile(path)
	return err
}
