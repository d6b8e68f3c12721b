// Package schema describes the fixed shape of a row: an ordered list of
// named, typed fields. A shape is supplied once, when a writer is built,
// and never changes for the lifetime of that writer.
package schema

import (
	"fmt"
)

// Kind identifies the type of a single field
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindText
	KindLabel
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindLabel:
		return "label"
	default:
		return "invalid"
	}
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int":
		return KindInt, nil
	case "uint":
		return KindUint, nil
	case "float":
		return KindFloat, nil
	case "bool":
		return KindBool, nil
	case "text", "string":
		return KindText, nil
	case "label":
		return KindLabel, nil
	default:
		return KindInvalid, fmt.Errorf("unknown field kind %q", s)
	}
}

// supported reports whether the kind is one the codec can format.
func (k Kind) supported() bool {
	switch k {
	case KindInt, KindUint, KindFloat, KindBool, KindText, KindLabel:
		return true
	default:
		return false
	}
}

// Field is one named, typed column of a shape
type Field struct {
	Name string
	Kind Kind
}

// Shape is the ordered set of fields describing one row.
// Declaration order determines column order.
type Shape []Field

// Validate checks that the shape can back a writer: it must be non-empty,
// every field must be named, and every kind must be a supported one.
// An unsupported kind is a schema error, caught here so it can never
// surface as a per-row failure later.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("shape must declare at least one field")
	}
	for i, f := range s {
		if f.Name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if !f.Kind.supported() {
			return fmt.Errorf("field %q has unsupported kind %d", f.Name, f.Kind)
		}
	}
	return nil
}

// ColumnNames returns the field names in declaration order
func (s Shape) ColumnNames() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
