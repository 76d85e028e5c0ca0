package ddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

func TestRenderDomain(t *testing.T) {
	got := RenderDomain(dbmeta.Domain{Name: "D_NAME", Type: dbmeta.FieldVarchar, Length: 80})
	assert.Equal(t, "CREATE DOMAIN D_NAME AS VARCHAR(80);", got)
}

func TestRenderDomains(t *testing.T) {
	got := RenderDomains([]dbmeta.Domain{
		{Name: "D_ID", Type: dbmeta.FieldBigint},
		{Name: "D_FLAG", Type: dbmeta.FieldSmallint},
	})
	assert.Equal(t, "CREATE DOMAIN D_ID AS BIGINT;\nCREATE DOMAIN D_FLAG AS SMALLINT;\n", got)
	assert.Empty(t, RenderDomains(nil))
}

func TestRenderTable(t *testing.T) {
	table := dbmeta.Table{
		Name: "USERS",
		Columns: []dbmeta.Column{
			{Name: "ID", Type: dbmeta.FieldInteger, NotNull: true},
			{Name: "NAME", Type: dbmeta.FieldVarchar, Length: 100},
			{Name: "CREATED", Type: dbmeta.FieldTimestamp, NotNull: true},
		},
	}

	want := "CREATE TABLE USERS (\n" +
		"  ID INTEGER NOT NULL,\n" +
		"  NAME VARCHAR(100),\n" +
		"  CREATED TIMESTAMP NOT NULL\n" +
		");"
	assert.Equal(t, want, RenderTable(table))
}

func TestRenderTable_NoTrailingComma(t *testing.T) {
	got := RenderTable(dbmeta.Table{
		Name:    "T",
		Columns: []dbmeta.Column{{Name: "A", Type: dbmeta.FieldInteger}},
	})
	assert.Equal(t, "CREATE TABLE T (\n  A INTEGER\n);", got)
	assert.NotContains(t, got, ",")
}

func TestRenderTable_NotNullOnlyWhereFlagged(t *testing.T) {
	got := RenderTable(dbmeta.Table{
		Name: "T",
		Columns: []dbmeta.Column{
			{Name: "A", Type: dbmeta.FieldInteger},
			{Name: "B", Type: dbmeta.FieldInteger, NotNull: true},
			{Name: "C", Type: dbmeta.FieldInteger},
		},
	})
	assert.Equal(t, 1, strings.Count(got, "NOT NULL"))
	assert.Contains(t, got, "  B INTEGER NOT NULL,\n")
}

func TestRenderTable_DomainColumn(t *testing.T) {
	got := RenderTable(dbmeta.Table{
		Name: "T",
		Columns: []dbmeta.Column{
			{Name: "ID", Type: dbmeta.FieldBigint, Domain: "D_ID", NotNull: true},
		},
	})
	assert.Contains(t, got, "  ID D_ID NOT NULL\n")
}

func TestRenderProcedure(t *testing.T) {
	proc := dbmeta.Procedure{
		Name:   "GET_USER",
		Source: "BEGIN\n  SELECT NAME FROM USERS WHERE ID = :UID INTO :UNAME;\n  SUSPEND;\nEND",
		Parameters: []dbmeta.ProcedureParameter{
			{Name: "UID", Direction: dbmeta.Input, Type: dbmeta.FieldInteger},
			{Name: "UNAME", Direction: dbmeta.Output, Type: dbmeta.FieldVarchar, Length: 100},
		},
	}

	want := "SET TERM ^ ;\n" +
		"CREATE PROCEDURE GET_USER (UID INTEGER)\n" +
		"RETURNS (UNAME VARCHAR(100))\n" +
		"AS\n" +
		"BEGIN\n  SELECT NAME FROM USERS WHERE ID = :UID INTO :UNAME;\n  SUSPEND;\nEND\n^\n" +
		"SET TERM ; ^"
	assert.Equal(t, want, RenderProcedure(proc))
}

func TestRenderProcedure_NoParameters(t *testing.T) {
	got := RenderProcedure(dbmeta.Procedure{Name: "NOOP", Source: "BEGIN END"})
	assert.Equal(t, "SET TERM ^ ;\nCREATE PROCEDURE NOOP\nAS\nBEGIN END\n^\nSET TERM ; ^", got)
}

func TestRenderProcedure_EmptyBody(t *testing.T) {
	got := RenderProcedure(dbmeta.Procedure{Name: "P", Source: "  \n "})
	assert.Contains(t, got, "AS\nBEGIN\nEND\n^\n")
}

func TestRenderProcedure_BodyWithCaret(t *testing.T) {
	got := RenderProcedure(dbmeta.Procedure{Name: "P", Source: "BEGIN x = 2^3; END"})
	assert.True(t, strings.HasPrefix(got, "SET TERM !! ;\n"))
	assert.True(t, strings.HasSuffix(got, "END\n!!\nSET TERM ; !!"))
}

func TestChooseTerminator(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"BEGIN END", "^"},
		{"a ^ b", "!!"},
		{"a ^ !! b", "$$"},
		{"^ !! $$ ## @@ ~~ ^^", "^^^"},
		{"^ !! $$ ## @@ ~~ ^^^", "^^^^"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := ChooseTerminator(tt.body)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, tt.body, got)
		})
	}
}

func TestRenderProcedures_Separated(t *testing.T) {
	got := RenderProcedures([]dbmeta.Procedure{{Name: "A"}, {Name: "B"}})
	assert.Equal(t, 2, strings.Count(got, "CREATE PROCEDURE"))
	assert.Contains(t, got, "SET TERM ; ^\n\nSET TERM ^ ;")
}
