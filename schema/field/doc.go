// Package field defines the logical attribute types of a generated mapping class.
//
// A logical type describes the value kind of an attribute independently of the
// storage backend. Each type has a logical name and the name of the property
// class emitted into generated source:
//
//	field.TypeInteger   // "Integer" -> Int()
//	field.TypeText      // "Text"    -> Unicode()
//	field.TypeInterval  // "Interval" -> TimeDelta()
//
// Both spellings are accepted when parsing descriptors:
//
//	t, _ := field.ParseType("Unicode") // field.TypeText
//
// Backend column keywords for each type live in dialect/sqlschema.
package field
