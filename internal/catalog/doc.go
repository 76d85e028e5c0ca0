// Package catalog reads schema metadata from the Firebird system tables and
// exports it as replayable DDL scripts.
//
// The Reader issues one query per artifact plus one sub-query per table or
// procedure. Every result set is drained and closed before the next query
// starts, so the whole export runs on a single connection with a single
// statement in flight.
//
// The Exporter writes one file per artifact in dbmeta.ExportOrder:
//
//	001_domains.sql     CREATE DOMAIN statements
//	002_tables.sql      CREATE TABLE statements
//	003_procedures.sql  CREATE PROCEDURE statements wrapped in SET TERM
package catalog
