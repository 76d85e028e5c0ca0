// Package ddl renders catalog metadata as Firebird DDL.
package ddl

import (
	"fmt"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// DefaultVarcharLength is used for variable-length types whose catalog
// length is missing or non-positive.
const DefaultVarcharLength = 255

type typeSpelling struct {
	name   string
	sized  bool // spelled as name(length)
	minLen int  // length used when the catalog length is non-positive
}

// typeSpellings is the single table of known storage type codes.
var typeSpellings = map[dbmeta.FieldType]typeSpelling{
	dbmeta.FieldSmallint:  {name: "SMALLINT"},
	dbmeta.FieldInteger:   {name: "INTEGER"},
	dbmeta.FieldFloat:     {name: "FLOAT"},
	dbmeta.FieldDate:      {name: "DATE"},
	dbmeta.FieldTime:      {name: "TIME"},
	dbmeta.FieldChar:      {name: "CHAR", sized: true, minLen: 1},
	dbmeta.FieldBigint:    {name: "BIGINT"},
	dbmeta.FieldDouble:    {name: "DOUBLE PRECISION"},
	dbmeta.FieldTimestamp: {name: "TIMESTAMP"},
	dbmeta.FieldVarchar:   {name: "VARCHAR", sized: true, minLen: DefaultVarcharLength},
	dbmeta.FieldBlob:      {name: "BLOB"},
}

var fallbackSpelling = typeSpelling{name: "VARCHAR", sized: true, minLen: DefaultVarcharLength}

// MapType returns the DDL spelling of a catalog storage type. Unknown codes
// fall back to VARCHAR with the supplied length.
func MapType(code dbmeta.FieldType, length int) string {
	spec, ok := typeSpellings[code]
	if !ok {
		spec = fallbackSpelling
	}
	if !spec.sized {
		return spec.name
	}
	if length <= 0 {
		length = spec.minLen
	}
	return fmt.Sprintf("%s(%d)", spec.name, length)
}

// IsKnownType reports whether code has a dedicated spelling.
func IsKnownType(code dbmeta.FieldType) bool {
	_, ok := typeSpellings[code]
	return ok
}
