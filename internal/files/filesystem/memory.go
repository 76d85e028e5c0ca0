package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry // map of absolute path -> entry
	root    string                  // root directory path
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// Relative paths are resolved against root. The root path is normalized
// to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.mkdirAll(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.abs(filePath)
	mfs.mkdirAll(path.Dir(abs))
	mfs.put(abs, []byte(content))
}

// Files returns the paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	var out []string
	for p, e := range mfs.entries {
		if !e.info.isDir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) put(abs string, data []byte) {
	content := append([]byte(nil), data...)
	mfs.entries[abs] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    filePerm,
			modTime: time.Now(),
		},
	}
}

// mkdirAll creates directory entries for dir and all of its parents.
func (mfs *MemoryFileSystem) mkdirAll(dir string) error {
	var missing []string
	for d := dir; ; d = path.Dir(d) {
		if e, ok := mfs.entries[d]; ok {
			if !e.info.isDir {
				return fmt.Errorf("failed to create directory %s: %s is a file", dir, d)
			}
			break
		}
		missing = append(missing, d)
		if d == "/" || d == "." {
			break
		}
	}
	for _, d := range missing {
		mfs.entries[d] = &memoryEntry{info: &memoryFileInfo{
			name:    path.Base(d),
			mode:    dirPerm | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}}
	}
	return nil
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, ok := mfs.entries[mfs.abs(filePath)]
	if !ok {
		return nil, notExist("read", filePath)
	}
	if e.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), e.content...), nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	dir := mfs.abs(dirPath)
	e, ok := mfs.entries[dir]
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %w", notExist("open", dirPath))
	}
	if !e.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var result []FileInfo
	for p, entry := range mfs.entries {
		if p != dir && path.Dir(p) == dir {
			result = append(result, entry.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, ok := mfs.entries[mfs.abs(statPath)]
	if !ok {
		return nil, notExist("stat", statPath)
	}
	return e.info, nil
}

// WriteFile implements FileSystemProvider.WriteFile. The parent directory
// must exist, as with the OS implementation.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.abs(filePath)
	parent, ok := mfs.entries[path.Dir(abs)]
	if !ok || !parent.info.isDir {
		return fmt.Errorf("failed to write %s: %w", filePath, notExist("open", filePath))
	}
	if e, ok := mfs.entries[abs]; ok && e.info.isDir {
		return fmt.Errorf("failed to write %s: is a directory", filePath)
	}
	mfs.put(abs, data)
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.mkdirAll(mfs.abs(dirPath))
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.abs(filePath)
	e, ok := mfs.entries[abs]
	if !ok {
		return nil
	}
	if e.info.isDir {
		return fmt.Errorf("failed to remove %s: is a directory", filePath)
	}
	delete(mfs.entries, abs)
	return nil
}

// String lists the tree, one path per line; handy in test failure output.
func (mfs *MemoryFileSystem) String() string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	paths := make([]string, 0, len(mfs.entries))
	for p := range mfs.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return strings.Join(paths, "\n")
}
