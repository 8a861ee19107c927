// Package load reads entity descriptions produced outside the generator:
// attribute descriptors, single-entity schema files and batch project files.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor is the attribute descriptor exchanged with external producers.
// All values are strings; flags are encoded as "True" or "False".
type Descriptor struct {
	Name             string `json:"name" yaml:"name"`
	LogicalType      string `json:"logicalType" yaml:"logicalType"`
	IsPrimary        string `json:"isPrimary" yaml:"isPrimary"`
	IsNotNull        string `json:"isNotNull" yaml:"isNotNull"`
	Default          string `json:"default" yaml:"default"`
	Reference        string `json:"reference" yaml:"reference"`
	IsCrossReference string `json:"isCrossReference" yaml:"isCrossReference"`
}

// Schema describes one entity and where its class is written.
type Schema struct {
	Entity      string        `json:"entity" yaml:"entity"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
	Backend     string        `json:"backend,omitempty" yaml:"backend,omitempty"`
	Package     bool          `json:"package,omitempty" yaml:"package,omitempty"`
	Attributes  []*Descriptor `json:"attributes" yaml:"attributes"`

	// Pos is the file the schema was read from, if any.
	Pos string `json:"-" yaml:"-"`
}

// Project groups several schemas generated in one batch.
type Project struct {
	Entities []*Schema `json:"entities" yaml:"entities"`
}

// Flag values accepted at the descriptor boundary.
const (
	FlagTrue  = "True"
	FlagFalse = "False"
)

// ParseFlag decodes a string-encoded boolean. The empty string is false,
// matching descriptors that omit the flag for attributes it does not apply to.
func ParseFlag(key, value string) (bool, error) {
	switch v := strings.TrimSpace(value); {
	case v == "":
		return false, nil
	case strings.EqualFold(v, FlagTrue):
		return true, nil
	case strings.EqualFold(v, FlagFalse):
		return false, nil
	default:
		return false, fmt.Errorf("load: %s must be %q or %q, got %q", key, FlagTrue, FlagFalse, value)
	}
}

// FormatFlag encodes a boolean the way descriptors carry it.
func FormatFlag(b bool) string {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// LoadSchema reads a schema file. The format is chosen by extension:
// ".json" is decoded as JSON, ".yaml" and ".yml" as YAML.
func LoadSchema(path string) (*Schema, error) {
	s := &Schema{}
	if err := decodeFile(path, s); err != nil {
		return nil, err
	}
	if s.Entity == "" {
		return nil, fmt.Errorf("load: %s: missing entity name", path)
	}
	s.Pos = path
	return s, nil
}

// LoadProject reads a project file listing several schemas.
func LoadProject(path string) (*Project, error) {
	p := &Project{}
	if err := decodeFile(path, p); err != nil {
		return nil, err
	}
	if len(p.Entities) == 0 {
		return nil, fmt.Errorf("load: %s: project has no entities", path)
	}
	for i, s := range p.Entities {
		if s == nil || s.Entity == "" {
			return nil, fmt.Errorf("load: %s: entity #%d has no name", path, i+1)
		}
		s.Pos = path
	}
	return p, nil
}

// LoadSchemas reads a file holding either a single schema or a project and
// returns the schemas it describes. A file with an entities key is a project.
func LoadSchemas(path string) ([]*Schema, error) {
	var head struct {
		Entities []any `json:"entities" yaml:"entities"`
	}
	if err := decodeFile(path, &head); err != nil {
		return nil, err
	}
	if head.Entities == nil {
		s, err := LoadSchema(path)
		if err != nil {
			return nil, err
		}
		return []*Schema{s}, nil
	}
	p, err := LoadProject(path)
	if err != nil {
		return nil, err
	}
	return p.Entities, nil
}

func decodeFile(path string, v any) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load: read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(buf, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, v)
	default:
		return fmt.Errorf("load: %s: unsupported file extension %q (use .json, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return fmt.Errorf("load: decode %s: %w", path, err)
	}
	return nil
}
