package gen

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/syssam/stormgen/compiler/load"
	"github.com/syssam/stormgen/schema/field"
)

// SurrogateKey is the integer primary key column added to every generated class.
const SurrogateKey = "ide"

// Attribute is a decoded attribute descriptor. Flags are native booleans;
// the string encoding used by descriptor files ends at NewAttribute.
type Attribute struct {
	Name           string
	Type           field.Type
	Primary        bool
	NotNull        bool
	Default        string
	Reference      string
	CrossReference bool
}

// NewAttribute decodes a boundary descriptor.
func NewAttribute(d *load.Descriptor) (*Attribute, error) {
	if d == nil {
		return nil, NewValidationError("", "", nil, "nil attribute descriptor")
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, NewValidationError("", "", d.Name, "attribute name is required")
	}
	a := &Attribute{
		Name:      name,
		Default:   d.Default,
		Reference: strings.TrimSpace(d.Reference),
	}
	flags := []struct {
		key   string
		value string
		dst   *bool
	}{
		{"isPrimary", d.IsPrimary, &a.Primary},
		{"isNotNull", d.IsNotNull, &a.NotNull},
		{"isCrossReference", d.IsCrossReference, &a.CrossReference},
	}
	for _, f := range flags {
		v, err := load.ParseFlag(f.key, f.value)
		if err != nil {
			return nil, &ValidationError{Field: name, Value: f.value, Message: "invalid flag", Cause: err}
		}
		*f.dst = v
	}
	if a.HasReference() {
		// The backing column of a relationship is always an integer.
		a.Type = field.TypeInteger
		return a, nil
	}
	if strings.TrimSpace(d.LogicalType) == "" {
		return nil, NewValidationError("", name, nil, "logicalType is required for attributes without a reference")
	}
	t, err := field.ParseType(d.LogicalType)
	if err != nil {
		return nil, &ValidationError{Field: name, Value: d.LogicalType, Message: "invalid logicalType", Cause: err}
	}
	a.Type = t
	return a, nil
}

// Ident returns the lower-cased name used for identifiers in generated source.
func (a *Attribute) Ident() string {
	return strings.ToLower(a.Name)
}

// HasReference reports whether the attribute points to another entity.
func (a *Attribute) HasReference() bool {
	return a.Reference != ""
}

// HasDefault reports whether a default value was supplied.
func (a *Attribute) HasDefault() bool {
	return a.Default != ""
}

// BackingColumn returns the name of the integer column holding a reference.
func (a *Attribute) BackingColumn() string {
	return a.Ident() + "_id"
}

// Target returns the key the relationship of a referencing attribute points at.
func (a *Attribute) Target() Target {
	return Target{Class: capitalize(a.Reference), Deferred: a.CrossReference}
}

// Columns returns the class-level names the attribute declares.
func (a *Attribute) Columns() []string {
	if a.HasReference() {
		return []string{a.BackingColumn(), a.Ident()}
	}
	return []string{a.Ident()}
}

// Target is the key column a relationship resolves to. A deferred target is
// emitted as a quoted name resolved by the mapping framework at load time,
// which breaks import cycles between entities that reference each other.
type Target struct {
	Class    string
	Deferred bool
}

// Expr returns the target expression placed in the relationship declaration.
func (t Target) Expr() string {
	expr := t.Class + "." + SurrogateKey
	if t.Deferred {
		return strconv.Quote(expr)
	}
	return expr
}

// Module returns the module the target class is imported from.
func (t Target) Module() string {
	return strings.ToLower(t.Class)
}

// DefaultPolicy selects how a simple column declaration is refined.
type DefaultPolicy uint8

// Default policies, in evaluation priority.
const (
	PolicyPrimary DefaultPolicy = iota + 1
	PolicyNotNullWithDefault
	PolicyNotNullNoDefault
	PolicyNullableWithDefault
	PolicyNullableNoDefault
)

var policyNames = [...]string{
	PolicyPrimary:             "primary",
	PolicyNotNullWithDefault:  "not-null-with-default",
	PolicyNotNullNoDefault:    "not-null",
	PolicyNullableWithDefault: "nullable-with-default",
	PolicyNullableNoDefault:   "nullable",
}

// String returns the policy name.
func (p DefaultPolicy) String() string {
	if p >= PolicyPrimary && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "invalid"
}

// Policy resolves the default policy of the attribute.
func (a *Attribute) Policy() DefaultPolicy {
	switch {
	case a.Primary:
		return PolicyPrimary
	case a.NotNull && a.HasDefault():
		return PolicyNotNullWithDefault
	case a.NotNull:
		return PolicyNotNullNoDefault
	case a.HasDefault():
		return PolicyNullableWithDefault
	default:
		return PolicyNullableNoDefault
	}
}

// DefaultLiteral coerces the default value to an integer literal.
func (a *Attribute) DefaultLiteral() (string, error) {
	v := strings.TrimSpace(a.Default)
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return "", &ConversionError{
			Attribute: a.Name,
			Value:     a.Default,
			Cause:     &strconv.NumError{Func: "ParseInt", Num: a.Default, Err: strconv.ErrSyntax},
		}
	}
	return n.String(), nil
}

// validateAttributes checks the attribute list of one entity as a whole.
func validateAttributes(entity string, attrs []*Attribute) error {
	var (
		primaries []string
		seen      = map[string]string{SurrogateKey: SurrogateKey}
	)
	for _, a := range attrs {
		if a == nil {
			return NewValidationError(entity, "", nil, "nil attribute")
		}
		if strings.TrimSpace(a.Name) == "" {
			return NewValidationError(entity, "", nil, "attribute name is required")
		}
		if !a.HasReference() && !a.Type.Valid() {
			return NewValidationError(entity, a.Name, a.Type, "invalid logical type")
		}
		for _, col := range a.Columns() {
			if prev, ok := seen[col]; ok {
				return NewValidationError(entity, a.Name, col, fmt.Sprintf("column %q collides with %q", col, prev))
			}
			seen[col] = a.Name
		}
		if a.Primary {
			primaries = append(primaries, a.Name)
		}
	}
	if len(primaries) > 1 {
		return NewValidationError(entity, "", primaries, "at most one attribute can be primary")
	}
	return nil
}
