// Package codec converts typed field values into their canonical text form
// and assembles header and data lines. It is pure: no state, no I/O.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rowlog/rowlog/pkg/schema"
)

// Value is one typed field value. Each supported field kind has a wrapper
// type implementing it; formatting dispatches through the interface rather
// than through reflection.
type Value interface {
	// Kind reports which schema kind this value satisfies
	Kind() schema.Kind

	// Format renders the canonical text form. precision is only
	// meaningful for floats and is ignored by the other kinds.
	Format(precision int) string
}

// Record is one row of values, one per shape field, in declared order
type Record []Value

// Int is a signed integer field value
type Int int64

func (v Int) Kind() schema.Kind { return schema.KindInt }

// Format renders plain decimal, sign only if negative
func (v Int) Format(int) string { return strconv.FormatInt(int64(v), 10) }

// Uint is an unsigned integer field value
type Uint uint64

func (v Uint) Kind() schema.Kind { return schema.KindUint }

// Format renders plain decimal
func (v Uint) Format(int) string { return strconv.FormatUint(uint64(v), 10) }

// Float is a floating point field value
type Float float64

func (v Float) Kind() schema.Kind { return schema.KindFloat }

// Format renders fixed-point with exactly precision digits after the
// decimal point, never scientific notation. Rounding is strconv's
// round-to-nearest, ties to even; precision 0 yields no decimal point.
func (v Float) Format(precision int) string {
	return strconv.FormatFloat(float64(v), 'f', precision, 64)
}

// Bool is a boolean field value
type Bool bool

func (v Bool) Kind() schema.Kind { return schema.KindBool }

// Format renders "true" or "false"
func (v Bool) Format(int) string { return strconv.FormatBool(bool(v)) }

// Text is a free-text field value, emitted raw: no quoting, no escaping.
// Callers must not put the column separator or a newline inside it.
type Text string

func (v Text) Kind() schema.Kind { return schema.KindText }

func (v Text) Format(int) string { return string(v) }

// Label is an enumerated label field value, emitted by canonical name
type Label string

func (v Label) Kind() schema.Kind { return schema.KindLabel }

func (v Label) Format(int) string { return string(v) }

// HeaderLine returns the column names joined by commas, newline terminated
func HeaderLine(shape schema.Shape) string {
	return strings.Join(shape.ColumnNames(), ",") + "\n"
}

// DataLine formats one record against its shape: values joined by a single
// comma, no trailing comma, one trailing newline. The record must have one
// value per shape field, each of the declared kind.
func DataLine(shape schema.Shape, rec Record, precision int) (string, error) {
	if len(rec) != len(shape) {
		return "", fmt.Errorf("record has %d values, shape declares %d fields", len(rec), len(shape))
	}
	parts := make([]string, len(rec))
	for i, v := range rec {
		if v == nil {
			return "", fmt.Errorf("field %q is nil", shape[i].Name)
		}
		if v.Kind() != shape[i].Kind {
			return "", fmt.Errorf("field %q: value kind %s does not match declared kind %s",
				shape[i].Name, v.Kind(), shape[i].Kind)
		}
		parts[i] = v.Format(precision)
	}
	return strings.Join(parts, ",") + "\n", nil
}
