package field

import (
	"fmt"
	"strings"
)

// A Type represents a logical attribute type, independent of the storage backend.
type Type uint8

// List of logical attribute types.
const (
	TypeInvalid Type = iota
	TypeInteger
	TypeText
	TypeBoolean
	TypeFloat
	TypeDecimal
	TypeDateTime
	TypeRaw
	TypeSerialized
	TypeDate
	TypeTime
	TypeInterval
	TypeList
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid:    "invalid",
		TypeInteger:    "Integer",
		TypeText:       "Text",
		TypeBoolean:    "Boolean",
		TypeFloat:      "Float",
		TypeDecimal:    "Decimal",
		TypeDateTime:   "DateTime",
		TypeRaw:        "Raw",
		TypeSerialized: "Serialized",
		TypeDate:       "Date",
		TypeTime:       "Time",
		TypeInterval:   "Interval",
		TypeList:       "List",
	}
	// property classes of the Storm mapping framework.
	stormNames = [...]string{
		TypeInvalid:    "",
		TypeInteger:    "Int",
		TypeText:       "Unicode",
		TypeBoolean:    "Bool",
		TypeFloat:      "Float",
		TypeDecimal:    "Decimal",
		TypeDateTime:   "DateTime",
		TypeRaw:        "RawStr",
		TypeSerialized: "Pickle",
		TypeDate:       "Date",
		TypeTime:       "Time",
		TypeInterval:   "TimeDelta",
		TypeList:       "List",
	}
)

// String returns the logical name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a known logical type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// StormType returns the property class used in generated mapping classes,
// e.g. "Int" for TypeInteger and "Unicode" for TypeText.
func (t Type) StormType() string {
	if t.Valid() {
		return stormNames[t]
	}
	return ""
}

// Numeric reports if the default value of the type is rendered as an integer literal.
// Text defaults are rendered as integer literals as well.
func (t Type) Numeric() bool {
	return t == TypeInteger || t == TypeText
}

// Types returns all valid logical types in declaration order.
func Types() []Type {
	types := make([]Type, 0, endTypes-1)
	for t := TypeInvalid + 1; t < endTypes; t++ {
		types = append(types, t)
	}
	return types
}

// ParseType parses a logical type from either its logical name ("Integer")
// or its mapping-framework class name ("Int"). Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for t := TypeInvalid + 1; t < endTypes; t++ {
		if strings.EqualFold(s, typeNames[t]) || strings.EqualFold(s, stormNames[t]) {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("field: unknown logical type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("field: cannot marshal invalid type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
