// Package levels loads room definitions from YAML files.
// This package depends on laser and rooms but neither depends on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/levels/formats"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// Loader handles loading rooms from a file tree. It implements
// rooms.Catalog; definitions are loaded on first use and cached until
// Reload.
type Loader struct {
	FS      fs.FS
	Root    string // shown in error messages
	Palette *laser.Palette

	mu    sync.Mutex
	cache map[string]*rooms.Definition
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return NewFSLoader(os.DirFS(root), root)
}

// NewFSLoader creates a loader over any file system.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{FS: fsys, Root: name, Palette: laser.DefaultPalette()}
}

// LoadAll scans and loads every room file. Rooms are sorted by ID.
// Files that fail to load are reported together in the returned error;
// the rooms that did load are still returned.
func (l *Loader) LoadAll() ([]*rooms.Definition, error) {
	var defs []*rooms.Definition
	var errs []error
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		def, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if prev, dup := seen[def.ID]; dup {
			errs = append(errs, fmt.Errorf("room %s defined in both %s and %s", def.ID, prev, p))
			return nil
		}
		seen[def.ID] = p
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs, errors.Join(errs...)
}

// LoadFile loads and validates a single room file. p is relative to the
// loader root.
func (l *Loader) LoadFile(p string) (*rooms.Definition, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	def := &rooms.Definition{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Start:       parsed.Start,
		Source:      parsed.Source,
		Connections: parsed.Connections,
		Lockers:     parsed.Lockers,
		GlassBoxes:  parsed.GlassBoxes,
		OnEnter:     parsed.OnEnter,
		Terminal:    parsed.Terminal,
	}
	if parsed.Terminal {
		return def, nil
	}

	switch {
	case parsed.Layout != "":
		def.Grid, err = laser.ParseLayoutString(parsed.Layout)
	default:
		def.Grid, err = l.loadBitmap(path.Join(path.Dir(p), parsed.Bitmap))
	}
	if err != nil {
		return nil, fmt.Errorf("room %s (%s): %w", parsed.ID, p, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return def, nil
}

func (l *Loader) loadBitmap(p string) (*laser.Grid, error) {
	f, err := l.FS.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening bitmap: %w", err)
	}
	defer f.Close()

	img, err := formats.DecodeBitmap(f, path.Ext(p))
	if err != nil {
		return nil, fmt.Errorf("decoding bitmap %s: %w", p, err)
	}
	return laser.GridFromImage(img, l.Palette)
}

// LoadByID loads a specific room by ID.
func (l *Loader) LoadByID(id string) (*rooms.Definition, error) {
	defs, err := l.LoadAll()
	for _, d := range defs {
		if d.ID == id {
			return d, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q", rooms.ErrUnknownRoom, id)
}

// Definition returns the cached definition of id, loading every room on
// first use.
func (l *Loader) Definition(id string) (*rooms.Definition, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.cache[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", rooms.ErrUnknownRoom, id)
	}
	return d, nil
}

// IDs returns every loadable room ID in sorted order.
func (l *Loader) IDs() []string {
	if err := l.ensure(); err != nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.cache))
	for id := range l.cache {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reload drops cached definitions; the next lookup reads the files again.
func (l *Loader) Reload() {
	l.mu.Lock()
	l.cache = nil
	l.mu.Unlock()
}

func (l *Loader) ensure() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache != nil {
		return nil
	}
	defs, err := l.LoadAll()
	if err != nil {
		return err
	}
	l.cache = make(map[string]*rooms.Definition, len(defs))
	for _, d := range defs {
		l.cache[d.ID] = d
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}
