// Package output renders command results as tables, JSON, YAML or
// hex-encoded binary.
package output

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
)

// Format represents the output format type.
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatBinary Format = "binary"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatBinary}

// ParseFormat parses a format name. An empty name is the table format.
func ParseFormat(s string) (Format, *errors.Error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "binary", "xdr":
		return FormatBinary, nil
	}
	return "", errors.Unspecifiedf("invalid output format %q (valid: table, json, yaml, binary)", s)
}

func (f Format) String() string {
	return string(f)
}

// Printer handles formatted output to a writer.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a Printer writing format to out.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print outputs data in the configured format. Tables need a TableRenderer
// and fall back to JSON otherwise; binary output needs an
// encoding.BinaryMarshaler.
func (p *Printer) Print(data any) *errors.Error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	case FormatBinary:
		return PrintBinary(p.out, data)
	}
	return errors.Unspecifiedf("unknown format: %s", p.format)
}

// Println prints a message followed by a newline.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// PrintBinary writes the binary encoding of data as one line of hex.
func PrintBinary(w io.Writer, data any) *errors.Error {
	m, ok := data.(encoding.BinaryMarshaler)
	if !ok {
		return errors.Unspecifiedf("binary output is not available for %T", data)
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return errors.Serialization(err.Error())
	}
	if _, err := fmt.Fprintln(w, hex.EncodeToString(b)); err != nil {
		return ioerr.Translate(err)
	}
	return nil
}
