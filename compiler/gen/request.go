package gen

import (
	"errors"
	"strings"

	"github.com/syssam/stormgen/compiler/load"
)

// Request is a single class generation request.
type Request struct {
	// Destination is the output file. In package mode only its directory is used.
	Destination string
	Entity      string
	// Attributes are rendered in order.
	Attributes []*Attribute
	// Backend selects the column keywords of the sql_table fragment.
	// Empty means the configured default.
	Backend string
	Package bool
}

// NewRequest decodes a loaded schema into a request.
func NewRequest(s *load.Schema) (*Request, error) {
	if s == nil {
		return nil, NewValidationError("", "", nil, "nil schema")
	}
	r := &Request{
		Destination: s.Destination,
		Entity:      s.Entity,
		Backend:     s.Backend,
		Package:     s.Package,
		Attributes:  make([]*Attribute, 0, len(s.Attributes)),
	}
	for _, d := range s.Attributes {
		a, err := NewAttribute(d)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) && verr.Type == "" {
				verr.Type = s.Entity
			}
			return nil, err
		}
		r.Attributes = append(r.Attributes, a)
	}
	return r, nil
}

// ClassName returns the normalized class name of the request entity.
func (r *Request) ClassName() string {
	return ClassName(r.Entity)
}

// OutputPath returns the file the request writes to.
func (r *Request) OutputPath() string {
	return OutputPath(r.Destination, r.ClassName(), r.Package)
}

// Validate checks the request before any fragment is generated.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Entity) == "" {
		return NewValidationError("", "", nil, "entity name is required")
	}
	if r.Destination == "" {
		return NewValidationError(r.Entity, "", nil, "destination is required")
	}
	return validateAttributes(r.Entity, r.Attributes)
}
