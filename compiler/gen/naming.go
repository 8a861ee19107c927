package gen

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var multiSpace = regexp.MustCompile(` {2,}`)

// capitalize upper-cases the first letter and lower-cases the rest,
// e.g. "cuenta CORRIENTE" -> "Cuenta corriente".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	// Casers keep state and are created per call so batches can share names.
	return cases.Upper(language.Und).String(string(r)) + cases.Lower(language.Und).String(s[size:])
}

// ClassName normalizes an entity name into the class identifier used in
// generated source ("my   class" -> "My_class").
func ClassName(entity string) string {
	name := multiSpace.ReplaceAllString(entity, " ")
	name = strings.ReplaceAll(name, " ", "_")
	return capitalize(name)
}
