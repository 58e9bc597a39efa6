package dataset

import (
	"strconv"
	"strings"

	"github.com/datakit-dev/datakit/pkg/errors"
	"github.com/datakit-dev/datakit/pkg/table"
)

// Column naming conventions: features start with x_, targets with y, id
// columns with id_, and the split column is named split.
const (
	FeaturePrefix = "x_"
	TargetPrefix  = "y"
	IDPrefix      = "id_"
	SplitColumn   = "split"
)

// Split labels a row's membership in a processing split.
type Split string

const (
	// SplitTrain marks training rows
	SplitTrain Split = "0.train"
	// SplitValid marks validation rows
	SplitValid Split = "1.valid"
	// SplitTest marks test rows
	SplitTest Split = "2.test"
)

// Metadata classifies a table's columns by the naming conventions above.
type Metadata struct {
	Features            []string
	Targets             []string
	IDs                 []string
	SplitColumns        []string
	NumericFeatures     []string
	CategoricalFeatures []string
}

// FeatureIndexes returns the positions of numeric and categorical features
// within the Features slice.
func (m Metadata) FeatureIndexes() (numeric, categorical []int) {
	pos := make(map[string]int, len(m.Features))
	for i, f := range m.Features {
		pos[f] = i
	}
	for _, f := range m.NumericFeatures {
		numeric = append(numeric, pos[f])
	}
	for _, f := range m.CategoricalFeatures {
		categorical = append(categorical, pos[f])
	}
	return numeric, categorical
}

// Describe classifies the table's columns. A feature column is numeric when
// every cell parses as a float, categorical otherwise.
func Describe(t *table.Table) Metadata {
	var m Metadata
	for _, col := range t.Columns() {
		switch {
		case strings.HasPrefix(col, FeaturePrefix):
			m.Features = append(m.Features, col)
			if columnIsNumeric(t, col) {
				m.NumericFeatures = append(m.NumericFeatures, col)
			} else {
				m.CategoricalFeatures = append(m.CategoricalFeatures, col)
			}
		case strings.HasPrefix(col, TargetPrefix):
			m.Targets = append(m.Targets, col)
		case strings.HasPrefix(col, IDPrefix):
			m.IDs = append(m.IDs, col)
		case col == SplitColumn:
			m.SplitColumns = append(m.SplitColumns, col)
		}
	}
	return m
}

// Subset returns the rows whose split column value is in the requested
// label set.
func Subset(t *table.Table, splits ...Split) (*table.Table, error) {
	idx, ok := t.ColumnIndex(SplitColumn)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "no %s column", SplitColumn)
	}

	wanted := make(map[string]bool, len(splits))
	for _, s := range splits {
		wanted[string(s)] = true
	}

	return t.FilterRows(func(row []string) bool {
		return wanted[row[idx]]
	}), nil
}

func columnIsNumeric(t *table.Table, name string) bool {
	cells, err := t.Column(name)
	if err != nil {
		return false
	}
	for _, cell := range cells {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}
