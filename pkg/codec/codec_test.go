package codec

import (
	"testing"

	"github.com/rowlog/rowlog/pkg/schema"
)

func TestFormat_CanonicalText(t *testing.T) {
	tests := []struct {
		name      string
		value     Value
		precision int
		want      string
	}{
		{"positive int", Int(42), 2, "42"},
		{"negative int", Int(-7), 2, "-7"},
		{"zero int", Int(0), 2, "0"},
		{"uint", Uint(18446744073709551615), 2, "18446744073709551615"},
		{"float pads to precision", Float(0.1), 2, "0.10"},
		{"float half", Float(0.5), 2, "0.50"},
		{"float no trailing noise", Float(1.25), 2, "1.25"},
		{"float rounds", Float(1.005), 2, "1.00"},
		{"float precision zero rounds up", Float(0.6), 0, "1"},
		{"float precision zero ties to even", Float(0.5), 0, "0"},
		{"float high precision", Float(0.1), 4, "0.1000"},
		{"bool true", Bool(true), 2, "true"},
		{"bool false", Bool(false), 2, "false"},
		{"text raw", Text("hello world"), 2, "hello world"},
		{"empty text", Text(""), 2, ""},
		{"label by name", Label("ACTIVE"), 2, "ACTIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Format(tt.precision); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.precision, got, tt.want)
			}
		})
	}
}

func TestHeaderLine(t *testing.T) {
	shape := schema.Shape{
		{Name: "count", Kind: schema.KindInt},
		{Name: "rate", Kind: schema.KindFloat},
	}
	if got := HeaderLine(shape); got != "count,rate\n" {
		t.Errorf("HeaderLine() = %q, want %q", got, "count,rate\n")
	}
}

func TestDataLine(t *testing.T) {
	shape := schema.Shape{
		{Name: "count", Kind: schema.KindInt},
		{Name: "rate", Kind: schema.KindFloat},
		{Name: "state", Kind: schema.KindLabel},
	}

	line, err := DataLine(shape, Record{Int(1), Float(0.5), Label("OPEN")}, 2)
	if err != nil {
		t.Fatalf("DataLine() unexpected error: %v", err)
	}
	if line != "1,0.50,OPEN\n" {
		t.Errorf("DataLine() = %q, want %q", line, "1,0.50,OPEN\n")
	}
}

func TestDataLine_ArityMismatch(t *testing.T) {
	shape := schema.Shape{
		{Name: "count", Kind: schema.KindInt},
		{Name: "rate", Kind: schema.KindFloat},
	}

	if _, err := DataLine(shape, Record{Int(1)}, 2); err == nil {
		t.Error("expected error for short record")
	}
	if _, err := DataLine(shape, Record{Int(1), Float(0.5), Bool(true)}, 2); err == nil {
		t.Error("expected error for long record")
	}
}

func TestDataLine_KindMismatch(t *testing.T) {
	shape := schema.Shape{
		{Name: "count", Kind: schema.KindInt},
	}

	if _, err := DataLine(shape, Record{Text("1")}, 2); err == nil {
		t.Error("expected error for kind mismatch")
	}
}

func TestDataLine_NilValue(t *testing.T) {
	shape := schema.Shape{
		{Name: "count", Kind: schema.KindInt},
	}

	if _, err := DataLine(shape, Record{nil}, 2); err == nil {
		t.Error("expected error for nil value")
	}
}
