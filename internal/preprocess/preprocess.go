// Package preprocess cleans a loaded dataset: every schema spend column is
// coerced to floats, and cells that fail coercion are imputed with the mean
// of the column's coercible values.
package preprocess

import (
	"errors"
	"math"

	"drug-spend-forecast/internal/model"
)

// ColumnReport summarizes what happened to one spend column.
type ColumnReport struct {
	Column  string
	Missing int // cells that failed numeric coercion
	Imputed int // cells replaced with the column mean
}

// Report summarizes a preprocessing pass.
type Report struct {
	Columns []ColumnReport
}

// TotalImputed counts imputed cells across every column.
func (r *Report) TotalImputed() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Imputed
	}
	return n
}

// TotalMissing counts cells still missing after imputation. Non-zero only
// when a column had no coercible values at all, so no mean existed.
func (r *Report) TotalMissing() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Missing - c.Imputed
	}
	return n
}

// Clean coerces and imputes the dataset in place.
//
// The mean is computed from the post-coercion, pre-imputation state of each
// column. A column with zero coercible values has no defined mean; its cells
// stay missing rather than being filled with a fabricated number, and drugs
// touching them are skipped later at training time.
func Clean(ds *model.Dataset, schema model.Schema) (*Report, error) {
	if ds == nil {
		return nil, errors.New("no dataset to preprocess")
	}

	report := &Report{}
	for _, col := range schema.SpendColumns() {
		vals := ds.Column(col)

		sum := 0.0
		valid := 0
		for _, v := range vals {
			if !math.IsNaN(v) {
				sum += v
				valid++
			}
		}
		cr := ColumnReport{Column: col, Missing: len(vals) - valid}

		if cr.Missing > 0 && valid > 0 {
			mean := sum / float64(valid)
			for i, v := range vals {
				if math.IsNaN(v) {
					vals[i] = mean
					cr.Imputed++
				}
			}
		}

		// Rewrite even fully-clean columns so numeric-as-string data ends up
		// stored as floats.
		if err := ds.SetColumn(col, vals); err != nil {
			return nil, err
		}
		report.Columns = append(report.Columns, cr)
	}

	return report, nil
}
