// Package gen generates Storm mapping classes from entity descriptions.
//
// A class is produced from a Request: the entity name, its ordered
// attributes, the destination and the package-mode flag. Each request is
// turned into a set of independent source fragments which are substituted
// into a class template and written to disk.
//
// # Pipeline
//
//	load.Schema / load.Descriptor (string-encoded)
//	        ↓
//	   NewRequest, NewAttribute (decoded, validated)
//	        ↓
//	   Fragments (imports, class attributes, parameters, init body, sql_table)
//	        ↓
//	   Template.Render (literal placeholder substitution)
//	        ↓
//	   Writer (single file or <name>/__init__.py)
//
// # Class attributes
//
// Every class starts with the surrogate key
//
//	ide = Int(primary = True)
//
// followed by one declaration per attribute without a reference, refined by
// exactly one DefaultPolicy, and then two declarations per referencing
// attribute:
//
//	cuenta_id = Int()
//	cuenta = Reference(cuenta_id, Cuenta.ide)
//
// Cross references name their target as a quoted string so that entities
// referencing each other do not import each other.
//
// # Templates
//
// The embedded default template can be replaced with WithTemplatePath or
// WithTemplate. Placeholders are plain tokens such as $class_name$ and
// $class_attributes$; any other text is copied through. The Spanish
// spellings ($nombre_clase$, $atributos_clase$, $herencia$, ...) are
// accepted as well.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: unusable configuration or template
//   - ValidationError: invalid entity or attribute input
//   - ConversionError: a default that is not an integer literal
//   - GenerationError: filesystem failures while writing output
//   - sqlschema.LookupError: a type missing from the backend type map
//
// Example error handling:
//
//	res, err := gen.New(cfg).Generate(req)
//	if errors.Is(err, gen.ErrConversion) {
//	    // fix the default value of the attribute
//	}
//
// No output is written when any fragment or the template fails.
package gen
