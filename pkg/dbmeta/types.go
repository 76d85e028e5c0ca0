package dbmeta

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
)

// BuildConfig contains all parameters needed to build a new database from scripts.
type BuildConfig struct {
	// DatabaseDir is the directory the database file is created in.
	DatabaseDir string

	// DatabaseFile is the database file name inside DatabaseDir (default DefaultDatabaseFile).
	DatabaseFile string

	// ScriptsDir holds the *.sql files replayed after creation.
	ScriptsDir string

	// Connection carries server address and credentials. Its Database field
	// is ignored; the service derives it from DatabaseDir and DatabaseFile.
	Connection ConnectionConfig

	// Create controls the physical layout of the new database.
	Create CreateOptions

	// SplitMode selects how script files are cut into statements.
	SplitMode SplitMode

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the BuildConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *BuildConfig) Validate() error {
	var errs []error

	if c.DatabaseDir == "" {
		errs = append(errs, fmt.Errorf("DatabaseDir is required: %w", ErrInvalidConfig))
	}
	if c.ScriptsDir == "" {
		errs = append(errs, fmt.Errorf("ScriptsDir is required: %w", ErrInvalidConfig))
	}
	if strings.ContainsAny(c.DatabaseFile, `/\`) {
		errs = append(errs, fmt.Errorf("DatabaseFile must be a plain file name, got %q: %w", c.DatabaseFile, ErrInvalidConfig))
	}
	if err := c.Create.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !c.SplitMode.IsValid() {
		errs = append(errs, fmt.Errorf("unknown split mode %d: %w", c.SplitMode, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ExportConfig contains all parameters needed to export catalog metadata as scripts.
type ExportConfig struct {
	// ConnectionString identifies the source database.
	ConnectionString string

	// Connection is the resolved form of ConnectionString with credential
	// fallbacks applied. When nil, ConnectionString is parsed as is.
	Connection *ConnectionConfig

	// OutputDir receives one file per artifact; existing files are overwritten.
	OutputDir string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the ExportConfig has all required fields.
func (c *ExportConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" && c.Connection == nil {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// UpdateConfig contains all parameters needed to apply update scripts to an existing database.
type UpdateConfig struct {
	// ConnectionString identifies the target database.
	ConnectionString string

	// Connection is the resolved form of ConnectionString with credential
	// fallbacks applied. When nil, ConnectionString is parsed as is.
	Connection *ConnectionConfig

	// ScriptsDir holds the *.sql files to apply.
	ScriptsDir string

	// SplitMode selects how script files are cut into statements.
	SplitMode SplitMode

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the UpdateConfig has all required fields and valid values.
func (c *UpdateConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" && c.Connection == nil {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.ScriptsDir == "" {
		errs = append(errs, fmt.Errorf("ScriptsDir is required: %w", ErrInvalidConfig))
	}
	if !c.SplitMode.IsValid() {
		errs = append(errs, fmt.Errorf("unknown split mode %d: %w", c.SplitMode, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// CreateOptions describes the physical parameters of a newly created database.
type CreateOptions struct {
	// PageSize in bytes; Firebird accepts 4096, 8192, 16384 and 32768.
	PageSize int

	// ForcedWrites makes the server flush writes synchronously.
	ForcedWrites bool
}

var validPageSizes = map[int]bool{4096: true, 8192: true, 16384: true, 32768: true}

// Validate checks the page size against the values Firebird supports.
func (o CreateOptions) Validate() error {
	if !validPageSizes[o.PageSize] {
		return fmt.Errorf("page size %d is not one of 4096, 8192, 16384, 32768: %w", o.PageSize, ErrInvalidConfig)
	}
	return nil
}

// DefaultCreateOptions returns the options build-db uses unless overridden.
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{PageSize: DefaultPageSize, ForcedWrites: true}
}

// DatabaseInfo reports the physical parameters of an attached database.
type DatabaseInfo struct {
	PageSize     int
	ForcedWrites bool
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string // database path or alias on the server
	User     string
	Password string
	Charset  string
	Role     string

	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration

	// Additional driver parameters passed through verbatim.
	AdditionalParams map[string]string
}

// Clone returns a deep copy of the configuration.
func (c *ConnectionConfig) Clone() *ConnectionConfig {
	clone := *c
	if c.AdditionalParams != nil {
		clone.AdditionalParams = maps.Clone(c.AdditionalParams)
	}
	return &clone
}

// SplitMode selects the statement splitting policy for script files.
type SplitMode int

const (
	// SplitTerminator splits on the current terminator and understands SET TERM.
	SplitTerminator SplitMode = iota
	// SplitSimple splits on every literal semicolon.
	SplitSimple
)

// String returns the flag spelling of the mode.
func (m SplitMode) String() string {
	switch m {
	case SplitTerminator:
		return "terminator"
	case SplitSimple:
		return "simple"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// IsValid returns true if the SplitMode is a defined value.
func (m SplitMode) IsValid() bool {
	return m == SplitTerminator || m == SplitSimple
}

// ParseSplitMode parses a mode name. The empty string selects SplitTerminator.
func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "terminator", "term":
		return SplitTerminator, nil
	case "simple":
		return SplitSimple, nil
	default:
		return SplitTerminator, fmt.Errorf("unknown split mode %q (want terminator or simple): %w", s, ErrInvalidConfig)
	}
}

// FieldType is the catalog's numeric column storage type (RDB$FIELD_TYPE).
type FieldType int

const (
	FieldSmallint  FieldType = 7
	FieldInteger   FieldType = 8
	FieldFloat     FieldType = 10
	FieldDate      FieldType = 12
	FieldTime      FieldType = 13
	FieldChar      FieldType = 14
	FieldBigint    FieldType = 16
	FieldDouble    FieldType = 27
	FieldTimestamp FieldType = 35
	FieldVarchar   FieldType = 37
	FieldBlob      FieldType = 261
)

// Column is one column of a user table as read from the catalog.
type Column struct {
	Name    string
	Type    FieldType
	Length  int
	NotNull bool

	// Domain names the user-defined domain the column is based on, if any.
	Domain string
}

// Direction tells whether a procedure parameter is an input or an output.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// ProcedureParameter is one parameter of a stored procedure.
type ProcedureParameter struct {
	Name      string
	Direction Direction
	Type      FieldType
	Length    int
}

// Domain is a named, reusable column type.
type Domain struct {
	Name   string
	Type   FieldType
	Length int
}

// Table is a user relation with its columns in catalog order.
type Table struct {
	Name    string
	Columns []Column
}

// Procedure is a user-defined stored procedure.
type Procedure struct {
	Name       string
	Source     string
	Parameters []ProcedureParameter
}

// Inputs returns the input parameters in catalog order.
func (p *Procedure) Inputs() []ProcedureParameter {
	return p.byDirection(Input)
}

// Outputs returns the output parameters in catalog order.
func (p *Procedure) Outputs() []ProcedureParameter {
	return p.byDirection(Output)
}

func (p *Procedure) byDirection(d Direction) []ProcedureParameter {
	var out []ProcedureParameter
	for _, param := range p.Parameters {
		if param.Direction == d {
			out = append(out, param)
		}
	}
	return out
}

// Statement is one executable unit cut from a script.
type Statement struct {
	Text string
	Line int // 1-based line in the script where the statement starts
}

// ScriptFile is a script discovered in a scripts directory.
type ScriptFile struct {
	Path    string // full path as passed to the filesystem
	Name    string // base name, the sort key
	Content string
}

// Artifact is one exported category of schema objects.
type Artifact string

const (
	ArtifactDomains    Artifact = "domains"
	ArtifactTables     Artifact = "tables"
	ArtifactProcedures Artifact = "procedures"
)

// ExportOrder is the fixed order artifacts are written in. Tables may
// reference domains and procedures may reference tables.
var ExportOrder = []Artifact{ArtifactDomains, ArtifactTables, ArtifactProcedures}

// FileName returns the output file name of the artifact. The numeric
// prefixes keep an export directory replayable in dependency order.
func (a Artifact) FileName() string {
	switch a {
	case ArtifactDomains:
		return "001_domains.sql"
	case ArtifactTables:
		return "002_tables.sql"
	case ArtifactProcedures:
		return "003_procedures.sql"
	default:
		return string(a) + ScriptExtension
	}
}
