package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var _ dbmeta.FileScanner = (*Scanner)(nil)

// Scanner lists and reads script files.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new script scanner on top of fsProvider.
// Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ListScripts returns the *.sql files directly inside dir sorted by name,
// with their content loaded.
//
// A missing directory, a path that is not a directory, or a directory
// without scripts yields an error matching dbmeta.ErrScriptsNotFound.
func (s *Scanner) ListScripts(dir string) ([]dbmeta.ScriptFile, error) {
	info, err := s.fsProvider.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scripts directory %s does not exist: %w", dir, dbmeta.ErrScriptsNotFound)
		}
		return nil, fmt.Errorf("failed to access scripts directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scripts path %s is not a directory: %w", dir, dbmeta.ErrScriptsNotFound)
	}

	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsScript(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no %s files in %s: %w", dbmeta.ScriptExtension, dir, dbmeta.ErrScriptsNotFound)
	}
	sort.Strings(names)

	scripts := make([]dbmeta.ScriptFile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := s.fsProvider.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script %s: %w", path, err)
		}
		scripts = append(scripts, dbmeta.ScriptFile{
			Path:    path,
			Name:    name,
			Content: string(content),
		})
	}

	return scripts, nil
}

// IsScript reports whether name has the script extension, ignoring case.
func IsScript(name string) bool {
	return strings.EqualFold(filepath.Ext(name), dbmeta.ScriptExtension)
}
