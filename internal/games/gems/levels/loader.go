// Package levels loads gem levels from disk or from the embedded campaign.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned by LoadByID for an unknown level.
var ErrNotFound = errors.New("levels: level not found")

// Level is a parsed level together with the file it came from.
type Level struct {
	*core.Level
	FilePath string
}

// FileError records a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Loader reads level files from a file system.
type Loader struct {
	Root    string
	fsys    fs.FS
	skipped []FileError
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{Root: ".", fsys: fsys}
}

// Builtin returns a loader for the campaign shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped and reported by Skipped.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	l.skipped = nil

	err := fs.WalkDir(l.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(name))) {
			return nil
		}

		level, err := l.LoadFile(name)
		if err != nil {
			l.skipped = append(l.skipped, FileError{Path: name, Err: err})
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// Skipped returns the files the last LoadAll could not load.
func (l *Loader) Skipped() []FileError {
	return l.skipped
}

// LoadFile loads a single level file, named relative to the loader root.
func (l *Loader) LoadFile(name string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", name, err)
	}
	return parse(data, name, filepath.Join(l.Root, filepath.FromSlash(name)))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// ReadFile loads a level from a path on disk, outside of any loader.
func ReadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	return parse(data, p, p)
}

// Next returns the level that follows id in a sorted campaign.
func Next(levels []Level, id string) (Level, bool) {
	for i, lvl := range levels {
		if lvl.ID == id && i+1 < len(levels) {
			return levels[i+1], true
		}
	}
	return Level{}, false
}

func parse(data []byte, name, filePath string) (Level, error) {
	ext := strings.ToLower(path.Ext(name))
	var (
		lvl *core.Level
		err error
	)
	switch ext {
	case ".yaml", ".yml":
		lvl, err = formats.ParseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", name, err)
	}
	return Level{Level: lvl, FilePath: filePath}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
