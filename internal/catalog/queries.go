package catalog

// Names of user objects are CHAR columns padded with blanks, hence TRIM.
// RDB$CHARACTER_LENGTH is the length in characters for text types;
// RDB$FIELD_LENGTH is in bytes and depends on the character set.

const domainsQuery = `
SELECT DISTINCT
  TRIM(f.RDB$FIELD_NAME),
  f.RDB$FIELD_TYPE,
  COALESCE(f.RDB$CHARACTER_LENGTH, f.RDB$FIELD_LENGTH, 0)
FROM RDB$FIELDS f
JOIN RDB$RELATION_FIELDS rf ON rf.RDB$FIELD_SOURCE = f.RDB$FIELD_NAME
JOIN RDB$RELATIONS r ON r.RDB$RELATION_NAME = rf.RDB$RELATION_NAME
WHERE COALESCE(r.RDB$SYSTEM_FLAG, 0) = 0
  AND COALESCE(f.RDB$SYSTEM_FLAG, 0) = 0
  AND f.RDB$FIELD_NAME NOT STARTING WITH 'RDB$'
ORDER BY 1`

const tablesQuery = `
SELECT TRIM(RDB$RELATION_NAME)
FROM RDB$RELATIONS
WHERE COALESCE(RDB$SYSTEM_FLAG, 0) = 0
  AND RDB$VIEW_BLR IS NULL
ORDER BY 1`

const columnsQuery = `
SELECT
  TRIM(rf.RDB$FIELD_NAME),
  f.RDB$FIELD_TYPE,
  COALESCE(f.RDB$CHARACTER_LENGTH, f.RDB$FIELD_LENGTH, 0),
  COALESCE(rf.RDB$NULL_FLAG, 0),
  TRIM(rf.RDB$FIELD_SOURCE)
FROM RDB$RELATION_FIELDS rf
JOIN RDB$FIELDS f ON f.RDB$FIELD_NAME = rf.RDB$FIELD_SOURCE
WHERE rf.RDB$RELATION_NAME = ?
ORDER BY rf.RDB$FIELD_POSITION`

const proceduresQuery = `
SELECT TRIM(RDB$PROCEDURE_NAME), RDB$PROCEDURE_SOURCE
FROM RDB$PROCEDURES
WHERE COALESCE(RDB$SYSTEM_FLAG, 0) = 0
  AND RDB$PACKAGE_NAME IS NULL
ORDER BY 1`

const parametersQuery = `
SELECT
  TRIM(p.RDB$PARAMETER_NAME),
  p.RDB$PARAMETER_TYPE,
  COALESCE(f.RDB$FIELD_TYPE, 0),
  COALESCE(f.RDB$CHARACTER_LENGTH, f.RDB$FIELD_LENGTH, 0)
FROM RDB$PROCEDURE_PARAMETERS p
JOIN RDB$FIELDS f ON f.RDB$FIELD_NAME = p.RDB$FIELD_SOURCE
WHERE p.RDB$PROCEDURE_NAME = ?
  AND p.RDB$PACKAGE_NAME IS NULL
ORDER BY p.RDB$PARAMETER_TYPE, p.RDB$PARAMETER_NUMBER`
