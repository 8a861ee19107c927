package dialect

import (
	"fmt"
	"strings"
)

// Dialect names for supported backends.
const (
	SQLite   = "sqlite"
	MySQL    = "mysql"
	Postgres = "postgres"
)

// Default is the backend used when a request does not name one.
const Default = SQLite

// aliases maps accepted spellings (lower-cased) to the dialect name.
var aliases = map[string]string{
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"pg":         Postgres,
}

// Dialects returns the supported dialect names in a stable order.
func Dialects() []string {
	return []string{SQLite, MySQL, Postgres}
}

// Normalize returns the dialect name for the given spelling.
// An empty name resolves to Default.
func Normalize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default, nil
	}
	if d, ok := aliases[strings.ToLower(name)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("dialect: unsupported backend %q (valid: %s)", name, strings.Join(Dialects(), ", "))
}

// DisplayName returns the human readable name of the dialect.
func DisplayName(name string) string {
	switch name {
	case SQLite:
		return "SQLite"
	case MySQL:
		return "MySQL"
	case Postgres:
		return "PostgreSQL"
	default:
		return name
	}
}
