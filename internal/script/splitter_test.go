package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/dbmeta/internal/ddl"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

func texts(stmts []dbmeta.Statement) []string {
	out := make([]string, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s.Text)
	}
	return out
}

func TestSplit_TerminatorMode_SetTerm(t *testing.T) {
	input := "SET TERM ^ ; CREATE PROCEDURE P AS BEGIN X; Y; END ^ SET TERM ; ^"

	got := NewSplitter(ModeTerminator).Split(input)

	assert.Equal(t, []string{"CREATE PROCEDURE P AS BEGIN X; Y; END"}, texts(got))
}

func TestSplit_SimpleMode(t *testing.T) {
	got := NewSplitter(ModeSimple).Split("A; B;; C")
	assert.Equal(t, []string{"A", "B", "C"}, texts(got))
}

func TestSplit_SimpleMode_IgnoresSetTerm(t *testing.T) {
	input := "SET TERM ^ ; CREATE PROCEDURE P AS BEGIN X; END ^"
	got := NewSplitter(ModeSimple).Split(input)
	assert.Equal(t, []string{"SET TERM ^", "CREATE PROCEDURE P AS BEGIN X", "END ^"}, texts(got))
}

func TestSplit_TerminatorMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain statements",
			input: "CREATE TABLE A (ID INTEGER);\nCREATE TABLE B (ID INTEGER);\n",
			want:  []string{"CREATE TABLE A (ID INTEGER)", "CREATE TABLE B (ID INTEGER)"},
		},
		{
			name:  "trailing statement without terminator",
			input: "SELECT 1 FROM RDB$DATABASE; SELECT 2 FROM RDB$DATABASE",
			want:  []string{"SELECT 1 FROM RDB$DATABASE", "SELECT 2 FROM RDB$DATABASE"},
		},
		{
			name:  "empty segments dropped",
			input: ";;  ;\n\t;",
			want:  []string{},
		},
		{
			name:  "semicolon in string literal",
			input: "INSERT INTO T VALUES ('a;b'); INSERT INTO T VALUES ('it''s;');",
			want:  []string{"INSERT INTO T VALUES ('a;b')", "INSERT INTO T VALUES ('it''s;')"},
		},
		{
			name:  "semicolon in quoted identifier",
			input: `CREATE TABLE "odd;name" (ID INTEGER);`,
			want:  []string{`CREATE TABLE "odd;name" (ID INTEGER)`},
		},
		{
			name:  "semicolon in line comment",
			input: "SELECT 1 -- one; two\nFROM RDB$DATABASE;",
			want:  []string{"SELECT 1 -- one; two\nFROM RDB$DATABASE"},
		},
		{
			name:  "semicolon in block comment",
			input: "SELECT /* a;b */ 1 FROM RDB$DATABASE;",
			want:  []string{"SELECT /* a;b */ 1 FROM RDB$DATABASE"},
		},
		{
			name:  "leading comments dropped",
			input: "-- header\n/* block\n comment */\nCREATE TABLE A (ID INTEGER);\n-- trailing only",
			want:  []string{"CREATE TABLE A (ID INTEGER)"},
		},
		{
			name:  "lowercase set terminator",
			input: "set terminator !! ;\nEXECUTE BLOCK AS BEGIN X; END!!\nset terminator ; !!\nSELECT 1 FROM RDB$DATABASE;",
			want:  []string{"EXECUTE BLOCK AS BEGIN X; END", "SELECT 1 FROM RDB$DATABASE"},
		},
		{
			name:  "set term with comment",
			input: "SET TERM ^ /* switch */ ;\nA; B^",
			want:  []string{"A; B"},
		},
		{
			name:  "two procedures in one block",
			input: "SET TERM ^ ;\nCREATE PROCEDURE A AS BEGIN X; END^\nCREATE PROCEDURE B AS BEGIN Y; END^\nSET TERM ; ^\n",
			want:  []string{"CREATE PROCEDURE A AS BEGIN X; END", "CREATE PROCEDURE B AS BEGIN Y; END"},
		},
		{
			name:  "terminator inside string after set term",
			input: "SET TERM ^ ;\nINSERT INTO T VALUES ('2^3')^",
			want:  []string{"INSERT INTO T VALUES ('2^3')"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSplitter(ModeTerminator).Split(tt.input)
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestSplit_UnclosedQuoteIsNotDiagnosed(t *testing.T) {
	got := NewSplitter(ModeTerminator).Split("SELECT 'oops; SELECT 2;")
	assert.Equal(t, []string{"SELECT 'oops; SELECT 2;"}, texts(got))
}

func TestSplit_Lines(t *testing.T) {
	input := "-- header\n\nCREATE TABLE A (\n  ID INTEGER\n);\n\nCREATE TABLE B (ID INTEGER);"
	got := NewSplitter(ModeTerminator).Split(input)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, 7, got[1].Line)

	simple := NewSplitter(ModeSimple).Split("A;\n\nB;\nC")
	require.Len(t, simple, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{simple[0].Line, simple[1].Line, simple[2].Line})
}

func TestSplit_StatementsAreTrimmedAndNonEmpty(t *testing.T) {
	inputs := []string{
		"  A ;\n\n B  ;   ",
		"SET TERM ^ ;\n  X; Y  ^\n^ SET TERM ; ^ ;",
		"\n\n\n",
		"",
	}
	for _, mode := range []Mode{ModeTerminator, ModeSimple} {
		for _, in := range inputs {
			for _, s := range NewSplitter(mode).Split(in) {
				assert.NotEmpty(t, s.Text)
				assert.Equal(t, strings.TrimSpace(s.Text), s.Text)
			}
		}
	}
}

func TestSplit_IsPure(t *testing.T) {
	input := "SET TERM ^ ;\nCREATE PROCEDURE P AS BEGIN X; END^\nSET TERM ; ^\nSELECT 1 FROM RDB$DATABASE;"
	s := NewSplitter(ModeTerminator)

	first := s.Split(input)
	second := s.Split(input)
	assert.Equal(t, first, second)

	// The terminator switch in one call must not leak into the next.
	assert.Equal(t, []string{"A", "B"}, texts(s.Split("A;B;")))
}

func TestSplit_RenderedProcedureRoundTrip(t *testing.T) {
	procs := []dbmeta.Procedure{
		{
			Name:   "ADD_USER",
			Source: "BEGIN\n  INSERT INTO USERS (NAME) VALUES (:NAME);\n  UPDATE STATS SET N = N + 1;\nEND",
			Parameters: []dbmeta.ProcedureParameter{
				{Name: "NAME", Direction: dbmeta.Input, Type: dbmeta.FieldVarchar, Length: 50},
			},
		},
		{Name: "POW", Source: "BEGIN\n  R = 2^3;\nEND"},
		{Name: "TRAILING_COMMENT", Source: "BEGIN\n  X = 1;\nEND -- done"},
		{Name: "TRAILING_COMMENT_POW", Source: "BEGIN\n  X = 2^3;\nEND -- ^ done"},
		{Name: "EMPTY"},
	}

	for _, p := range procs {
		t.Run(p.Name, func(t *testing.T) {
			got := NewSplitter(ModeTerminator).Split(ddl.RenderProcedure(p))
			require.Len(t, got, 1)
			assert.True(t, strings.HasPrefix(got[0].Text, "CREATE PROCEDURE "+p.Name))
		})
	}

	all := NewSplitter(ModeTerminator).Split(ddl.RenderProcedures(procs))
	require.Len(t, all, len(procs))
	for i, p := range procs {
		assert.True(t, strings.HasPrefix(all[i].Text, "CREATE PROCEDURE "+p.Name), all[i].Text)
		assert.NotContains(t, all[i].Text, "SET TERM")
	}
}

func TestSplit_ProcedureEndingInLineCommentKeepsFollowingStatements(t *testing.T) {
	text := ddl.RenderProcedures([]dbmeta.Procedure{
		{Name: "P1", Source: "BEGIN\n  X = 1;\nEND -- done"},
		{Name: "P2", Source: "BEGIN\n  Y = 2;\nEND"},
	})

	got := NewSplitter(ModeTerminator).Split(text)

	require.Len(t, got, 2)
	assert.Equal(t, "CREATE PROCEDURE P1\nAS\nBEGIN\n  X = 1;\nEND -- done", got[0].Text)
	assert.Equal(t, "CREATE PROCEDURE P2\nAS\nBEGIN\n  Y = 2;\nEND", got[1].Text)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("simple")
	require.NoError(t, err)
	assert.Equal(t, ModeSimple, m)
	assert.Equal(t, ModeSimple, NewSplitter(m).Mode())

	_, err = ParseMode("bogus")
	assert.ErrorIs(t, err, dbmeta.ErrInvalidConfig)
}
