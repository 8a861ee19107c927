// Package sqlschema maps logical attribute types to backend column keywords.
//
// The table is built once with NewTypeMap and shared read-only:
//
//	tm := sqlschema.NewTypeMap()
//	kw, err := tm.Lookup(dialect.MySQL, field.TypeBoolean) // "TINYINT(1)"
//
// Keywords come from the atlas driver type constants where atlas defines
// one. A backend may leave a type undefined (MySQL has no list type); such
// lookups fail with a *LookupError rather than falling back to a default.
package sqlschema
