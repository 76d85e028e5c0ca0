package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// systemFieldPrefix marks field sources the engine generates for columns
// declared with a plain type instead of a domain.
const systemFieldPrefix = "RDB$"

// Reader loads user schema objects from the catalog of one database.
type Reader struct {
	conn dbmeta.DBConnection
}

// NewReader creates a Reader querying through conn.
func NewReader(conn dbmeta.DBConnection) *Reader {
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &Reader{conn: conn}
}

// Domains returns the user domains referenced by user tables, ordered by name.
func (r *Reader) Domains(ctx context.Context) ([]dbmeta.Domain, error) {
	domains, err := queryAll(ctx, r.conn, domainsQuery, func(rows dbmeta.Rows) (dbmeta.Domain, error) {
		var d dbmeta.Domain
		err := rows.Scan(&d.Name, &d.Type, &d.Length)
		d.Name = strings.TrimSpace(d.Name)
		return d, err
	})
	if err != nil {
		return nil, &dbmeta.CatalogError{Artifact: dbmeta.ArtifactDomains, Err: err}
	}
	return domains, nil
}

// Tables returns the user tables, views excluded, with their columns in
// declaration order.
func (r *Reader) Tables(ctx context.Context) ([]dbmeta.Table, error) {
	names, err := queryAll(ctx, r.conn, tablesQuery, scanName)
	if err != nil {
		return nil, &dbmeta.CatalogError{Artifact: dbmeta.ArtifactTables, Err: err}
	}

	tables := make([]dbmeta.Table, 0, len(names))
	for _, name := range names {
		columns, err := queryAll(ctx, r.conn, columnsQuery, scanColumn, name)
		if err != nil {
			return nil, &dbmeta.CatalogError{Artifact: dbmeta.ArtifactTables, Object: name, Err: err}
		}
		tables = append(tables, dbmeta.Table{Name: name, Columns: columns})
	}
	return tables, nil
}

// Procedures returns the standalone stored procedures with their parameters.
// Packaged procedures are skipped.
func (r *Reader) Procedures(ctx context.Context) ([]dbmeta.Procedure, error) {
	procs, err := queryAll(ctx, r.conn, proceduresQuery, func(rows dbmeta.Rows) (dbmeta.Procedure, error) {
		var (
			p      dbmeta.Procedure
			source sql.NullString
		)
		err := rows.Scan(&p.Name, &source)
		p.Name = strings.TrimSpace(p.Name)
		p.Source = strings.TrimSpace(source.String)
		return p, err
	})
	if err != nil {
		return nil, &dbmeta.CatalogError{Artifact: dbmeta.ArtifactProcedures, Err: err}
	}

	for i := range procs {
		params, err := queryAll(ctx, r.conn, parametersQuery, scanParameter, procs[i].Name)
		if err != nil {
			return nil, &dbmeta.CatalogError{Artifact: dbmeta.ArtifactProcedures, Object: procs[i].Name, Err: err}
		}
		procs[i].Parameters = params
	}
	return procs, nil
}

func scanName(rows dbmeta.Rows) (string, error) {
	var name string
	err := rows.Scan(&name)
	return strings.TrimSpace(name), err
}

func scanColumn(rows dbmeta.Rows) (dbmeta.Column, error) {
	var (
		c        dbmeta.Column
		nullFlag int
		source   sql.NullString
	)
	if err := rows.Scan(&c.Name, &c.Type, &c.Length, &nullFlag, &source); err != nil {
		return c, err
	}
	c.Name = strings.TrimSpace(c.Name)
	c.NotNull = nullFlag == 1
	if s := strings.TrimSpace(source.String); s != "" && !strings.HasPrefix(s, systemFieldPrefix) {
		c.Domain = s
	}
	return c, nil
}

func scanParameter(rows dbmeta.Rows) (dbmeta.ProcedureParameter, error) {
	var (
		p       dbmeta.ProcedureParameter
		paramType int
	)
	if err := rows.Scan(&p.Name, &paramType, &p.Type, &p.Length); err != nil {
		return p, err
	}
	p.Name = strings.TrimSpace(p.Name)
	if paramType == 1 {
		p.Direction = dbmeta.Output
	}
	return p, nil
}

// queryAll runs query and scans every row with scan. The result set is
// closed before queryAll returns, leaving the connection free for the
// next statement.
func queryAll[T any](ctx context.Context, conn dbmeta.DBConnection, query string, scan func(dbmeta.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, rows.Close()
}
