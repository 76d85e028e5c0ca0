package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dbmeta/internal/checksum"
	"github.com/vvka-141/dbmeta/internal/ddl"
	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// SchemaReader is the catalog access the Exporter needs. *Reader implements it.
type SchemaReader interface {
	Domains(ctx context.Context) ([]dbmeta.Domain, error)
	Tables(ctx context.Context) ([]dbmeta.Table, error)
	Procedures(ctx context.Context) ([]dbmeta.Procedure, error)
}

var _ SchemaReader = (*Reader)(nil)

// Exporter renders the catalog as one DDL script per artifact.
type Exporter struct {
	reader SchemaReader
	fs     filesystem.FileSystemProvider
	logger dbmeta.Logger
	calc   checksum.Calculator
}

// NewExporter creates an Exporter. All dependencies are required.
func NewExporter(reader SchemaReader, fsProvider filesystem.FileSystemProvider, logger dbmeta.Logger) *Exporter {
	if reader == nil {
		panic("reader cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Exporter{reader: reader, fs: fsProvider, logger: logger, calc: checksum.New()}
}

// Export writes every artifact into outputDir in dbmeta.ExportOrder,
// creating the directory if needed and overwriting existing files.
// An artifact without objects still produces its (empty) file.
// The first failure stops the export; files already written stay.
func (e *Exporter) Export(ctx context.Context, outputDir string) error {
	if err := e.fs.MkdirAll(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	for _, artifact := range dbmeta.ExportOrder {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, count, err := e.render(ctx, artifact)
		if err != nil {
			return err
		}

		path := filepath.Join(outputDir, artifact.FileName())
		unchanged := e.sameAsExisting(path, content)
		if err := e.fs.WriteFile(path, []byte(content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if unchanged {
			e.logger.Info("Exported %d %s to %s (unchanged)", count, artifact, path)
		} else {
			e.logger.Info("Exported %d %s to %s", count, artifact, path)
		}
	}
	return nil
}

// sameAsExisting reports whether path already holds content up to
// comments and formatting.
func (e *Exporter) sameAsExisting(path, content string) bool {
	old, err := e.fs.ReadFile(path)
	if err != nil {
		return false
	}
	oldSum := e.calc.CalculateNormalized(old)
	newSum := e.calc.CalculateNormalized([]byte(content))
	e.logger.Verbose("%s: previous %s, new %s", path, checksum.Short(oldSum), checksum.Short(newSum))
	return oldSum == newSum
}

// render loads and renders one artifact completely before anything is written.
func (e *Exporter) render(ctx context.Context, artifact dbmeta.Artifact) (string, int, error) {
	e.logger.Verbose("Reading %s from catalog", artifact)

	switch artifact {
	case dbmeta.ArtifactDomains:
		domains, err := e.reader.Domains(ctx)
		if err != nil {
			return "", 0, err
		}
		for _, d := range domains {
			e.checkType(d.Name, d.Type)
		}
		return ddl.RenderDomains(domains), len(domains), nil

	case dbmeta.ArtifactTables:
		tables, err := e.reader.Tables(ctx)
		if err != nil {
			return "", 0, err
		}
		for _, t := range tables {
			for _, c := range t.Columns {
				if c.Domain != "" {
					continue
				}
				e.checkType(t.Name+"."+c.Name, c.Type)
			}
		}
		return ddl.RenderTables(tables), len(tables), nil

	case dbmeta.ArtifactProcedures:
		procs, err := e.reader.Procedures(ctx)
		if err != nil {
			return "", 0, err
		}
		for _, p := range procs {
			for _, param := range p.Parameters {
				e.checkType(p.Name+"."+param.Name, param.Type)
			}
		}
		return ddl.RenderProcedures(procs), len(procs), nil

	default:
		return "", 0, fmt.Errorf("unknown artifact %q", artifact)
	}
}

// checkType warns about storage type codes that render as the VARCHAR fallback.
func (e *Exporter) checkType(object string, code dbmeta.FieldType) {
	if !ddl.IsKnownType(code) {
		e.logger.Warning("%s has unsupported type code %d, exported as VARCHAR", object, code)
	}
}
