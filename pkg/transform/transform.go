// Package transform holds pure table transforms for the example pipeline.
// Transforms never mutate their input; they return a new table.
package transform

import (
	"strconv"

	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Scale returns a new table with every cell multiplied by factor. All cells
// must be numeric. Scale is idempotent at factor 1, and scaling by a then b
// equals scaling once by a*b.
func Scale(t *table.Table, factor float64) (*table.Table, error) {
	out := table.Empty(t.Columns()...)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData,
					"cell ("+strconv.Itoa(i)+","+strconv.Itoa(j)+") is not numeric")
			}
			row[j] = table.FormatFloat(v * factor)
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RenameColumns returns a new table with column names replaced per the
// mapping. Columns absent from the mapping keep their names; mapping keys
// that match no column are ignored.
func RenameColumns(t *table.Table, renames map[string]string) *table.Table {
	columns := t.Columns()
	for i, col := range columns {
		if renamed, ok := renames[col]; ok {
			columns[i] = renamed
		}
	}
	out, _ := table.New(columns, t.Rows())
	return out
}
