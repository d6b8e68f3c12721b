package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rowlog/rowlog/pkg/codec"
	"github.com/rowlog/rowlog/pkg/schema"
)

// parseShape parses a shape declaration of the form
// "name:kind,name:kind,..." where kind is one of int, uint, float, bool,
// text, label.
func parseShape(s string) (schema.Shape, error) {
	if s == "" {
		return nil, fmt.Errorf("schema declaration is empty")
	}
	parts := strings.Split(s, ",")
	shape := make(schema.Shape, 0, len(parts))
	for _, part := range parts {
		name, kindStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("field %q: want name:kind", part)
		}
		kind, err := schema.ParseKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		shape = append(shape, schema.Field{Name: name, Kind: kind})
	}
	return shape, nil
}

// parseRow parses comma-separated values against a shape. Field values
// must not themselves contain commas; that is a constraint of the output
// format, so it holds for the input too.
func parseRow(shape schema.Shape, s string) (codec.Record, error) {
	parts := strings.Split(s, ",")
	if len(parts) != len(shape) {
		return nil, fmt.Errorf("row has %d values, schema declares %d fields", len(parts), len(shape))
	}
	rec := make(codec.Record, len(parts))
	for i, raw := range parts {
		v, err := parseValue(shape[i], raw)
		if err != nil {
			return nil, err
		}
		rec[i] = v
	}
	return rec, nil
}

func parseValue(f schema.Field, raw string) (codec.Value, error) {
	switch f.Kind {
	case schema.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid int %q", f.Name, raw)
		}
		return codec.Int(n), nil
	case schema.KindUint:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid uint %q", f.Name, raw)
		}
		return codec.Uint(n), nil
	case schema.KindFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid float %q", f.Name, raw)
		}
		return codec.Float(x), nil
	case schema.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: invalid bool %q", f.Name, raw)
		}
		return codec.Bool(b), nil
	case schema.KindText:
		return codec.Text(raw), nil
	case schema.KindLabel:
		return codec.Label(raw), nil
	default:
		return nil, fmt.Errorf("field %q: unsupported kind", f.Name)
	}
}
