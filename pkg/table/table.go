// Package table provides the in-memory tabular structure materialized by
// dataset reads: an ordered collection of named columns of uniform length.
// The container is deliberately dumb: no schema validation, no type
// enforcement. Cells are held as strings and interpreted numerically on
// demand.
package table

import (
	"strconv"

	"github.com/datakit-dev/datakit/pkg/errors"
)

// Table is an ordered collection of named columns of uniform length.
type Table struct {
	columns []string
	rows    [][]string
}

// New builds a table from column names and rows. Every row must have exactly
// one cell per column.
func New(columns []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.Newf(errors.ErrorTypeData,
				"row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}

	t := &Table{
		columns: make([]string, len(columns)),
		rows:    make([][]string, len(rows)),
	}
	copy(t.columns, columns)
	for i, row := range rows {
		t.rows[i] = make([]string, len(row))
		copy(t.rows[i], row)
	}
	return t, nil
}

// Empty creates a table with the given columns and no rows.
func Empty(columns ...string) *Table {
	t, _ := New(columns, nil)
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Row returns the cells of row i.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Rows returns all rows in order.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.columns {
		if col == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns the cells of the named column, top to bottom.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "no column %q", name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Float64Column returns the named column interpreted as float64 values.
func (t *Table) Float64Column(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"column "+name+" is not numeric")
		}
		out[i] = v
	}
	return out, nil
}

// AppendRow adds a row to the table.
func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.columns) {
		return errors.Newf(errors.ErrorTypeData,
			"row has %d cells, want %d", len(row), len(t.columns))
	}
	copied := make([]string, len(row))
	copy(copied, row)
	t.rows = append(t.rows, copied)
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out, _ := New(t.columns, t.rows)
	return out
}

// Equal reports cell-for-cell, column-order-for-column-order equality.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != other.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != other.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// FilterRows returns a new table holding only the rows the predicate keeps.
func (t *Table) FilterRows(keep func(row []string) bool) *Table {
	out := Empty(t.columns...)
	for _, row := range t.rows {
		if keep(row) {
			_ = out.AppendRow(row)
		}
	}
	return out
}

// FormatFloat renders a float the way table cells store numbers.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
