package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/kbukum/faultline/errors"
)

// TableRenderer is implemented by types that can render themselves as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// PrintTable writes data as a borderless, left-aligned table.
func PrintTable(w io.Writer, data TableRenderer) *errors.Error {
	table := newTable(w, "")
	table.SetHeader(data.Headers())
	table.SetAutoFormatHeaders(true)
	for _, row := range data.Rows() {
		table.Append(row)
	}
	table.Render()
	return nil
}

// TableData is a TableRenderer for ad-hoc tables.
type TableData struct {
	headers []string
	rows    [][]string
}

// NewTableData creates a new TableData with the given headers.
func NewTableData(headers ...string) *TableData {
	return &TableData{headers: headers, rows: make([][]string, 0)}
}

// AddRow adds a row to the table.
func (t *TableData) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *TableData) Headers() []string { return t.headers }

func (t *TableData) Rows() [][]string { return t.rows }

// Pairs is a key-value TableRenderer printed without headers.
type Pairs [][2]string

func (p Pairs) Headers() []string { return nil }

func (p Pairs) Rows() [][]string {
	rows := make([][]string, 0, len(p))
	for _, pair := range p {
		rows = append(rows, []string{pair[0], pair[1]})
	}
	return rows
}

// SimpleTable prints key-value pairs separated by a colon.
func SimpleTable(w io.Writer, pairs Pairs) *errors.Error {
	table := newTable(w, ":")
	table.SetAutoFormatHeaders(false)
	for _, row := range pairs.Rows() {
		table.Append(row)
	}
	table.Render()
	return nil
}

func newTable(w io.Writer, columnSeparator string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(columnSeparator)
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}
