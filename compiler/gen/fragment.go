package gen

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/syssam/stormgen/dialect/sqlschema"
	"github.com/syssam/stormgen/schema/field"
)

const (
	classIndent = "    "
	bodyIndent  = classIndent + classIndent
)

// Fragments holds the generated pieces substituted into a class template.
// Every fragment is computed from the same attribute list and none depends
// on another.
type Fragments struct {
	Imports    string
	Attributes string
	Parameters string
	InitBody   string
	// SQLTable is empty unless the sql_table fragment is enabled.
	SQLTable string
	// HasReference selects the relationship-capable base class.
	HasReference bool
}

// Base returns the base class token of the generated class.
func (f *Fragments) Base() string {
	if f.HasReference {
		return "Storm"
	}
	return "object"
}

// fragmentBuilder computes the fragments of a single request.
type fragmentBuilder struct {
	entity string
	attrs  []*Attribute
	logger *slog.Logger
}

func (b *fragmentBuilder) build() (*Fragments, error) {
	simple, err := b.simpleAttributes()
	if err != nil {
		return nil, err
	}
	refs, hasRef := b.references()
	imports := b.imports()
	f := &Fragments{
		Imports:      strings.Join(imports, "\n"),
		Attributes:   joinLines(simple, refs),
		Parameters:   b.parameters(),
		InitBody:     b.initBody(),
		HasReference: hasRef,
	}
	b.logger.Debug("fragments computed",
		"columns", len(simple),
		"references", len(refs)/2,
		"imports", len(imports),
	)
	return f, nil
}

// imports emits one import line per direct reference. Cross references are
// resolved lazily and need no import. Duplicates are kept.
func (b *fragmentBuilder) imports() []string {
	var lines []string
	for _, a := range b.attrs {
		if !a.HasReference() || a.CrossReference {
			continue
		}
		t := a.Target()
		lines = append(lines, fmt.Sprintf("from %s import %s", t.Module(), t.Class))
	}
	return lines
}

// references emits the backing column and the relationship of every
// referencing attribute.
func (b *fragmentBuilder) references() ([]string, bool) {
	var lines []string
	for _, a := range b.attrs {
		if !a.HasReference() {
			continue
		}
		var args string
		if a.Primary {
			args = "primary = True"
		}
		lines = append(lines,
			fmt.Sprintf("%s%s = %s(%s)", classIndent, a.BackingColumn(), field.TypeInteger.StormType(), args),
			fmt.Sprintf("%s%s = Reference(%s, %s)", classIndent, a.Ident(), a.BackingColumn(), a.Target().Expr()),
		)
	}
	return lines, len(lines) > 0
}

// simpleAttributes emits the surrogate key followed by one declaration per
// attribute without a reference.
func (b *fragmentBuilder) simpleAttributes() ([]string, error) {
	lines := []string{fmt.Sprintf("%s%s = %s(primary = True)", classIndent, SurrogateKey, field.TypeInteger.StormType())}
	for _, a := range b.attrs {
		if a.HasReference() {
			continue
		}
		args, err := b.columnArgs(a)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%s%s = %s(%s)", classIndent, a.Ident(), a.Type.StormType(), args))
	}
	return lines, nil
}

// columnArgs resolves the declaration arguments of a simple attribute.
func (b *fragmentBuilder) columnArgs(a *Attribute) (string, error) {
	policy := a.Policy()
	switch policy {
	case PolicyPrimary:
		return "primary = True", nil
	case PolicyNotNullNoDefault:
		return "allow_none = False", nil
	case PolicyNullableNoDefault:
		return "", nil
	}
	if !a.Type.Numeric() {
		b.logger.Warn("default ignored for non-numeric type",
			"attribute", a.Name,
			"type", a.Type.String(),
			"default", a.Default,
		)
		return "", nil
	}
	lit, err := a.DefaultLiteral()
	if err != nil {
		var conv *ConversionError
		if errors.As(err, &conv) {
			conv.Entity = b.entity
		}
		return "", err
	}
	if policy == PolicyNotNullWithDefault {
		return "allow_none = False, value_factory = " + lit, nil
	}
	return "value_factory = " + lit, nil
}

func (b *fragmentBuilder) initBody() string {
	lines := make([]string, len(b.attrs))
	for i, a := range b.attrs {
		lines[i] = fmt.Sprintf("%sself.%s = %s", bodyIndent, a.Ident(), a.Ident())
	}
	return strings.Join(lines, "\n")
}

// parameters renders ", a, b, c" so the fragment can follow self.
func (b *fragmentBuilder) parameters() string {
	var sb strings.Builder
	for _, a := range b.attrs {
		sb.WriteString(", ")
		sb.WriteString(a.Ident())
	}
	return sb.String()
}

// SQLTable renders the column list of the entity table for backend as a
// triple-quoted literal. Referencing attributes contribute their integer
// backing column.
func SQLTable(tm *sqlschema.TypeMap, backend string, attrs []*Attribute) (string, error) {
	columns, err := columnDefs(tm, backend, attrs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("'''\n%s(\n%s\n%s)'''", bodyIndent, indentJoin(bodyIndent, columns), bodyIndent), nil
}

// CreateTable renders a CREATE TABLE statement for the table a generated
// class maps. The surrogate key column comes first and is the primary key
// unless an attribute is marked primary.
func CreateTable(tm *sqlschema.TypeMap, backend, table string, attrs []*Attribute) (string, error) {
	keyword, err := tm.Lookup(backend, field.TypeInteger)
	if err != nil {
		return "", err
	}
	key := SurrogateKey + " " + keyword + " PRIMARY KEY"
	if slices.ContainsFunc(attrs, func(a *Attribute) bool { return a.Primary }) {
		key = SurrogateKey + " " + keyword + " NOT NULL"
	}
	columns, err := columnDefs(tm, backend, attrs)
	if err != nil {
		return "", err
	}
	columns = append([]string{key}, columns...)
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", table, indentJoin(classIndent, columns)), nil
}

func columnDefs(tm *sqlschema.TypeMap, backend string, attrs []*Attribute) ([]string, error) {
	columns := make([]string, 0, len(attrs))
	for _, a := range attrs {
		name, typ := a.Ident(), a.Type
		if a.HasReference() {
			name, typ = a.BackingColumn(), field.TypeInteger
		}
		keyword, err := tm.Lookup(backend, typ)
		if err != nil {
			return nil, err
		}
		def := name + " " + keyword
		switch {
		case a.Primary:
			def += " PRIMARY KEY"
		case a.NotNull:
			def += " NOT NULL"
		}
		columns = append(columns, def)
	}
	return columns, nil
}

func indentJoin(indent string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return indent + strings.Join(lines, ",\n"+indent)
}

// emptySQLTable is substituted when no sql_table fragment was generated.
const emptySQLTable = "''''''"

func joinLines(groups ...[]string) string {
	var lines []string
	for _, g := range groups {
		lines = append(lines, g...)
	}
	return strings.Join(lines, "\n")
}
