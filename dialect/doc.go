// Package dialect identifies the storage backends a generated class can target.
//
// # Supported Dialects
//
// Each backend is identified by a constant string:
//
//	dialect.SQLite   = "sqlite"
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//
// Backend names coming from descriptor files or the command line are
// normalized with Normalize, which also accepts the display spellings
// ("SQLite", "MySQL", "PostgreSQL"):
//
//	name, err := dialect.Normalize("PostgreSQL") // "postgres"
//
// # Sub-packages
//
//   - dialect/sqlschema: the backend column-type mapping table
package dialect
