package gen

import (
	_ "embed"
	"os"
	"strings"
	"unicode/utf8"
)

// Placeholder tokens recognized in class templates. Any other text in a
// template is copied through unchanged.
const (
	PlaceholderClassName  = "$class_name$"
	PlaceholderObjectName = "$object_name$"
	PlaceholderImports    = "$imports$"
	PlaceholderAttributes = "$class_attributes$"
	PlaceholderParameters = "$parameters$"
	PlaceholderInitBody   = "$init_attributes$"
	PlaceholderSQLTable   = "$sql_table$"
	PlaceholderBase       = "$base$"
)

// Spanish spellings accepted for templates written for earlier generators.
// $imports$ and $sql_table$ were never translated.
const (
	aliasClassName  = "$nombre_clase$"
	aliasObjectName = "$nombre_objeto$"
	aliasAttributes = "$atributos_clase$"
	aliasInitBody   = "$atributos_init$"
	aliasParameters = "$parametros$"
	aliasBase       = "$herencia$"
)

//go:embed template/storm_class.py.tmpl
var defaultTemplate []byte

// Template is a class template document.
type Template struct {
	// Name identifies the template source in logs and errors.
	Name string
	text string
}

// DefaultTemplate returns the embedded class template.
func DefaultTemplate() *Template {
	return &Template{Name: "embedded", text: string(defaultTemplate)}
}

// ParseTemplate creates a template from UTF-8 text.
func ParseTemplate(name string, data []byte) (*Template, error) {
	if !utf8.Valid(data) {
		return nil, NewConfigError("Template", name, "template is not valid UTF-8")
	}
	return &Template{Name: name, text: string(data)}, nil
}

// LoadTemplate reads a template document from path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Option: "TemplatePath", Value: path, Message: "read template", Cause: err}
	}
	return ParseTemplate(path, data)
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}

// Render substitutes every placeholder occurrence in a single pass, so
// fragment text is never rescanned for tokens.
func (t *Template) Render(className string, f *Fragments) string {
	sqlTable := f.SQLTable
	if sqlTable == "" {
		sqlTable = emptySQLTable
	}
	r := strings.NewReplacer(
		PlaceholderClassName, className,
		PlaceholderObjectName, className,
		PlaceholderImports, f.Imports,
		PlaceholderAttributes, f.Attributes,
		PlaceholderParameters, f.Parameters,
		PlaceholderInitBody, f.InitBody,
		PlaceholderSQLTable, sqlTable,
		PlaceholderBase, f.Base(),
		aliasClassName, className,
		aliasObjectName, className,
		aliasAttributes, f.Attributes,
		aliasInitBody, f.InitBody,
		aliasParameters, f.Parameters,
		aliasBase, f.Base(),
	)
	return r.Replace(t.text)
}
