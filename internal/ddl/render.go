package ddl

import (
	"strings"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// DefaultTerminator is the terminator procedure definitions are wrapped in
// unless their body already contains it.
const DefaultTerminator = "^"

// alternativeTerminators are tried in order when the body contains "^".
var alternativeTerminators = []string{"!!", "$$", "##", "@@", "~~", "^^"}

// RenderDomain renders one CREATE DOMAIN statement.
func RenderDomain(d dbmeta.Domain) string {
	return "CREATE DOMAIN " + d.Name + " AS " + MapType(d.Type, d.Length) + ";"
}

// RenderDomains renders all domains, one statement per line.
func RenderDomains(domains []dbmeta.Domain) string {
	var b strings.Builder
	for _, d := range domains {
		b.WriteString(RenderDomain(d))
		b.WriteString("\n")
	}
	return b.String()
}

// ColumnType returns the type a column is declared with: its domain when
// it is based on one, otherwise the mapped storage type.
func ColumnType(c dbmeta.Column) string {
	if c.Domain != "" {
		return c.Domain
	}
	return MapType(c.Type, c.Length)
}

// RenderTable renders one CREATE TABLE statement with one column per line.
func RenderTable(t dbmeta.Table) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(t.Name)
	b.WriteString(" (\n")
	for i, c := range t.Columns {
		b.WriteString("  ")
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(ColumnType(c))
		if c.NotNull {
			b.WriteString(" NOT NULL")
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}

// RenderTables renders all tables separated by blank lines.
func RenderTables(tables []dbmeta.Table) string {
	return joinBlocks(len(tables), func(i int) string { return RenderTable(tables[i]) })
}

// RenderProcedure renders a CREATE PROCEDURE statement wrapped in SET TERM
// directives, so that semicolons inside the body do not end the statement.
func RenderProcedure(p dbmeta.Procedure) string {
	body := strings.TrimSpace(p.Source)
	if body == "" {
		body = "BEGIN\nEND"
	}
	term := ChooseTerminator(body)

	var b strings.Builder
	b.WriteString("SET TERM " + term + " ;\n")
	b.WriteString("CREATE PROCEDURE ")
	b.WriteString(p.Name)
	if in := p.Inputs(); len(in) > 0 {
		b.WriteString(" (")
		writeParams(&b, in)
		b.WriteString(")")
	}
	b.WriteString("\n")
	if out := p.Outputs(); len(out) > 0 {
		b.WriteString("RETURNS (")
		writeParams(&b, out)
		b.WriteString(")\n")
	}
	b.WriteString("AS\n")
	b.WriteString(body)
	// The terminator gets its own line: a body ending in a line comment
	// would otherwise swallow it.
	b.WriteString("\n" + term + "\n")
	b.WriteString("SET TERM ; " + term)
	return b.String()
}

// RenderProcedures renders all procedures separated by blank lines.
func RenderProcedures(procs []dbmeta.Procedure) string {
	return joinBlocks(len(procs), func(i int) string { return RenderProcedure(procs[i]) })
}

// ChooseTerminator returns DefaultTerminator, or the first alternative that
// does not occur in body.
func ChooseTerminator(body string) string {
	if !strings.Contains(body, DefaultTerminator) {
		return DefaultTerminator
	}
	for _, t := range alternativeTerminators {
		if !strings.Contains(body, t) {
			return t
		}
	}
	t := "^^^"
	for strings.Contains(body, t) {
		t += "^"
	}
	return t
}

func writeParams(b *strings.Builder, params []dbmeta.ProcedureParameter) {
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(" ")
		b.WriteString(MapType(p.Type, p.Length))
	}
}

func joinBlocks(n int, render func(int) string) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(render(i))
		b.WriteString("\n\n")
	}
	return b.String()
}
