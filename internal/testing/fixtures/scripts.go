package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vvka-141/dbmeta/internal/files/filesystem"
)

// ScriptsBuilder provides a fluent API for building script directories
// used in workflow tests.
//
// Example usage:
//
//	dir := NewScriptsBuilder().
//	    Add("001_tables.sql", "CREATE TABLE T (ID INTEGER);").
//	    AddProcedure("002_procs.sql", "P", "BEGIN\n  SUSPEND;\nEND").
//	    WriteDir(t.TempDir())
type ScriptsBuilder struct {
	files map[string]string // name -> content
}

// NewScriptsBuilder creates an empty builder.
func NewScriptsBuilder() *ScriptsBuilder {
	return &ScriptsBuilder{files: make(map[string]string)}
}

// Add adds a script file.
func (b *ScriptsBuilder) Add(name, content string) *ScriptsBuilder {
	b.files[name] = content
	return b
}

// AddProcedure adds a script defining one procedure wrapped in SET TERM.
func (b *ScriptsBuilder) AddProcedure(name, procedure, body string) *ScriptsBuilder {
	return b.Add(name, fmt.Sprintf("SET TERM ^ ;\nCREATE PROCEDURE %s\nAS\n%s\n^\nSET TERM ; ^\n", procedure, body))
}

// Names returns the file names in execution order.
func (b *ScriptsBuilder) Names() []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteDir writes the scripts into dir on disk and returns dir.
func (b *ScriptsBuilder) WriteDir(dir string) (string, error) {
	for name, content := range b.files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write fixture %s: %w", name, err)
		}
	}
	return dir, nil
}

// BuildMemory returns an in-memory filesystem with the scripts under dir.
func (b *ScriptsBuilder) BuildMemory(root, dir string) *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem(root)
	for name, content := range b.files {
		mfs.AddFile(filepath.Join(dir, name), content)
	}
	return mfs
}
