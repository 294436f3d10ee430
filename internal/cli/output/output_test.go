package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kbukum/faultline/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" binary ", FormatBinary, false},
		{"xdr", FormatBinary, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil || err.Kind() != errors.KindUnspecified {
				t.Errorf("%q: expected an Unspecified error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: expected %s, got %s (%v)", tt.input, tt.want, got, err)
		}
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	data := NewTableData("KIND", "TAG")
	data.AddRow("15", "OddLength")

	if err := NewPrinter(&buf, FormatTable).Print(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "KIND") || !strings.Contains(out, "OddLength") {
		t.Errorf("expected header and row, got %q", out)
	}
}

func TestPrintTable_FallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatTable).Print(map[string]int{"n": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"n": 1`) {
		t.Errorf("expected indented JSON, got %q", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	fault := errors.InvalidHexCharacter("g", 1)
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, `"InvalidHexCharacter"`},
		{FormatYAML, "kind: InvalidHexCharacter"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := NewPrinter(&buf, tt.format).Print(fault); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.format, err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("%s: expected %q in %q", tt.format, tt.want, buf.String())
		}
	}
}

func TestPrintBinary(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintBinary(&buf, errors.New(errors.KindOddLength)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "0000000f" {
		t.Errorf("expected 0000000f, got %s", got)
	}

	err := PrintBinary(&buf, "text")
	if err == nil || err.Kind() != errors.KindUnspecified {
		t.Errorf("expected Unspecified for a non-binary value, got %v", err)
	}
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	if err := SimpleTable(&buf, Pairs{{"Version", "dev"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Version") || !strings.Contains(buf.String(), "dev") {
		t.Errorf("unexpected table %q", buf.String())
	}
}
