package lua

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/boothium/internal/renderer/highlight"
)

// Catalog holds the languages loaded from definition scripts, indexed by
// name and file extension. Later definitions replace earlier ones of the
// same name or extension.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]highlight.Definition
	exts map[string]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		defs: make(map[string]highlight.Definition),
		exts: make(map[string]string),
	}
}

// Add adds definitions to the catalog.
func (c *Catalog) Add(defs ...highlight.Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range defs {
		c.defs[d.Name] = d
		for _, ext := range d.Extensions {
			c.exts[ext] = d.Name
		}
	}
}

// LoadFile loads the languages of one script.
func (c *Catalog) LoadFile(path string, opts ...StateOption) error {
	defs, err := LoadLanguage(path, opts...)
	if err != nil {
		return err
	}
	c.Add(defs...)
	return nil
}

// LoadDir loads every *.lua script of dir in name order. A missing
// directory is not an error. A failing script does not stop the others;
// all failures are returned together.
func (c *Catalog) LoadDir(dir string, opts ...StateOption) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading language directory: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".lua") {
			continue
		}
		if err := c.LoadFile(filepath.Join(dir, e.Name()), opts...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the definition named name.
func (c *Catalog) Lookup(name string) (highlight.Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.defs[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// ForPath returns the definition registered for the extension of path.
func (c *Catalog) ForPath(path string) (highlight.Definition, bool) {
	c.mu.RLock()
	name, ok := c.exts[strings.ToLower(filepath.Ext(path))]
	c.mu.RUnlock()
	if !ok {
		return highlight.Definition{}, false
	}
	return c.Lookup(name)
}

// Names returns the loaded language names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.defs))
}

// Len returns the number of loaded languages.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
