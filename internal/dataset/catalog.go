// Package dataset lists and loads the CurbLR files a curbmap instance serves.
// Files come from the configured dataset list or, when none is configured,
// from every *.json file in the data directory.
package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Entry describes one dataset file.
type Entry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Dataset is a loaded dataset file.
type Dataset struct {
	Entry
	Version    string
	Collection types.FeatureCollection
	Bounds     Bounds
}

// Catalog resolves dataset names to files and keeps decoded files in memory
// until they change on disk. It is safe for concurrent use.
type Catalog struct {
	dir    string
	refs   []types.DatasetRef
	logger *slog.Logger

	mu     sync.RWMutex
	loaded map[string]*Dataset
}

// NewCatalog returns a catalog over dir. refs, when non-empty, replaces the
// directory listing.
func NewCatalog(dir string, refs []types.DatasetRef, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{dir: dir, refs: refs, logger: logger, loaded: make(map[string]*Dataset)}
}

// NameOf derives a dataset name from a file path: the base name without the
// ".curblr.json" or ".json" suffix.
func NameOf(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{".curblr.json", ".json"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}

// List returns the datasets sorted by name.
func (c *Catalog) List() ([]Entry, error) {
	var entries []Entry
	if len(c.refs) > 0 {
		for _, ref := range c.refs {
			e := Entry{Name: NameOf(ref.Path), Label: ref.Label, Path: c.resolve(ref.Path)}
			if e.Label == "" {
				e.Label = e.Name
			}
			entries = append(entries, e)
		}
	} else {
		matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.dir, err)
		}
		for _, m := range matches {
			name := NameOf(m)
			entries = append(entries, Entry{Name: name, Label: name, Path: m})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries, nil
}

// Lookup returns the entry named name, or ErrDatasetNotFound.
func (c *Catalog) Lookup(name string) (Entry, error) {
	entries, err := c.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", types.ErrDatasetNotFound, name)
}

// Load returns the decoded dataset named name. A file is decoded again only
// when its size or modification time changes.
func (c *Catalog) Load(name string) (*Dataset, error) {
	e, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset %q: %w", name, err)
	}
	version := strconv.FormatInt(info.ModTime().UnixNano(), 36) + "-" + strconv.FormatInt(info.Size(), 36)

	c.mu.RLock()
	ds, ok := c.loaded[name]
	c.mu.RUnlock()
	if ok && ds.Version == version && ds.Path == e.Path {
		return ds, nil
	}

	coll, err := ReadFile(e.Path)
	if err != nil {
		return nil, err
	}
	ds = &Dataset{Entry: e, Version: version, Collection: coll, Bounds: CollectionBounds(coll, c.logger)}

	c.mu.Lock()
	c.loaded[name] = ds
	c.mu.Unlock()

	c.logger.Info("dataset loaded", "name", name, "path", e.Path, "features", len(coll.Features))
	return ds, nil
}

// ReadFile decodes the CurbLR feature collection at path.
func ReadFile(path string) (types.FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.FeatureCollection{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	coll, err := types.DecodeCollection(f)
	if err != nil {
		return types.FeatureCollection{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return coll, nil
}

func (c *Catalog) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}
