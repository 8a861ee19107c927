package sqlschema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/stormgen/dialect"
	"github.com/syssam/stormgen/schema/field"
)

// ErrLookup indicates a backend/type pair that has no column keyword.
var ErrLookup = errors.New("stormgen: column type lookup failed")

// LookupError is returned when the type map has no keyword for a backend and logical type.
type LookupError struct {
	Backend string
	Type    field.Type
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("stormgen: no column type for %s on backend %q", e.Type, e.Backend)
}

// Is reports whether the target matches the sentinel error for LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// IsLookupError reports whether the error is a LookupError.
func IsLookupError(err error) bool {
	var lookupErr *LookupError
	return errors.As(err, &lookupErr)
}

// TypeMap maps (backend, logical type) pairs to backend column keywords.
// A TypeMap is read-only once built and safe for concurrent use.
type TypeMap struct {
	columns map[string]map[field.Type]string
}

// NewTypeMap builds the column keyword table for every supported backend.
// MySQL has no keyword for field.TypeList.
func NewTypeMap() *TypeMap {
	upper := strings.ToUpper
	return &TypeMap{
		columns: map[string]map[field.Type]string{
			dialect.SQLite: {
				field.TypeInteger:    upper(sqlite.TypeInteger),
				field.TypeText:       "VARCHAR",
				field.TypeBoolean:    "INT",
				field.TypeFloat:      "FLOAT",
				field.TypeDecimal:    "VARCHAR",
				field.TypeDateTime:   "VARCHAR",
				field.TypeRaw:        upper(sqlite.TypeBlob),
				field.TypeSerialized: upper(sqlite.TypeBlob),
				field.TypeDate:       "VARCHAR",
				field.TypeTime:       "VARCHAR",
				field.TypeInterval:   "VARCHAR",
				field.TypeList:       "VARCHAR",
			},
			dialect.MySQL: {
				field.TypeInteger:    upper(mysql.TypeInt),
				field.TypeText:       upper(mysql.TypeVarchar),
				field.TypeBoolean:    upper(mysql.TypeTinyInt) + "(1)",
				field.TypeFloat:      upper(mysql.TypeFloat),
				field.TypeDecimal:    upper(mysql.TypeDecimal),
				field.TypeDateTime:   upper(mysql.TypeDateTime),
				field.TypeRaw:        upper(mysql.TypeBlob),
				field.TypeSerialized: upper(mysql.TypeBlob),
				field.TypeDate:       upper(mysql.TypeDate),
				field.TypeTime:       upper(mysql.TypeTime),
				field.TypeInterval:   upper(mysql.TypeText),
			},
			dialect.Postgres: {
				field.TypeInteger:    upper(postgres.TypeInt),
				field.TypeText:       upper(postgres.TypeVarChar),
				field.TypeBoolean:    upper(postgres.TypeBool),
				field.TypeFloat:      upper(postgres.TypeFloat),
				field.TypeDecimal:    upper(postgres.TypeDecimal),
				field.TypeDateTime:   upper(postgres.TypeTimestamp),
				field.TypeRaw:        upper(postgres.TypeBytea),
				field.TypeSerialized: upper(postgres.TypeBytea),
				field.TypeDate:       upper(postgres.TypeDate),
				field.TypeTime:       upper(postgres.TypeTime),
				field.TypeInterval:   upper(postgres.TypeInterval),
				field.TypeList:       upper(postgres.TypeText) + "[]",
			},
		},
	}
}

// Lookup returns the column keyword for the logical type on the given backend.
// The backend must be a normalized dialect name.
func (m *TypeMap) Lookup(backend string, t field.Type) (string, error) {
	columns, ok := m.columns[backend]
	if !ok {
		return "", &LookupError{Backend: backend, Type: t}
	}
	keyword, ok := columns[t]
	if !ok {
		return "", &LookupError{Backend: backend, Type: t}
	}
	return keyword, nil
}

// Backends returns the backends present in the map, sorted.
func (m *TypeMap) Backends() []string {
	backends := make([]string, 0, len(m.columns))
	for b := range m.columns {
		backends = append(backends, b)
	}
	slices.Sort(backends)
	return backends
}

// Supports reports whether the backend defines a keyword for the type.
func (m *TypeMap) Supports(backend string, t field.Type) bool {
	_, err := m.Lookup(backend, t)
	return err == nil
}
