package model

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names follow the CMS "Medicare Part D Spending by Drug" extract.
//
// Example record:
//
//	{
//	  "Brnd_Name": "Drug A",
//	  "Tot_Spndng_2018": 100,
//	  "Avg_Spnd_Per_Bene_2018": "10.5",
//	  ...
//	}
const (
	BrandColumn      = "Brnd_Name"
	TotalPrefix      = "Tot_Spndng_"
	AvgPerBenePrefix = "Avg_Spnd_Per_Bene_"
)

// TotalColumn returns the total-spending column name for a history year.
func TotalColumn(year int) string {
	return fmt.Sprintf("%s%d", TotalPrefix, year)
}

// AvgPerBeneColumn returns the avg-spend-per-beneficiary column name for a
// history year.
func AvgPerBeneColumn(year int) string {
	return fmt.Sprintf("%s%d", AvgPerBenePrefix, year)
}

// Schema declares the columns a dataset must carry: the brand key plus the
// two spend columns per history year. It is validated once at load time
// instead of discovering spend columns by prefix matching on whatever the
// file happens to contain.
type Schema struct {
	StartYear int
	EndYear   int
}

// DefaultSchema covers the fixed 5-year historical window of the extract.
func DefaultSchema() Schema {
	return Schema{StartYear: 2018, EndYear: 2022}
}

func (s Schema) Validate() error {
	if s.StartYear <= 0 || s.EndYear <= 0 {
		return fmt.Errorf("history years must be positive, got %d-%d", s.StartYear, s.EndYear)
	}
	if s.StartYear > s.EndYear {
		return fmt.Errorf("history start year %d is after end year %d", s.StartYear, s.EndYear)
	}
	return nil
}

// Years lists the historical years in ascending order.
func (s Schema) Years() []int {
	out := make([]int, 0, s.EndYear-s.StartYear+1)
	for y := s.StartYear; y <= s.EndYear; y++ {
		out = append(out, y)
	}
	return out
}

// TotalColumns lists the total-spending columns, one per year, ascending.
func (s Schema) TotalColumns() []string {
	years := s.Years()
	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, TotalColumn(y))
	}
	return out
}

// AvgPerBeneColumns lists the avg-spend columns, one per year, ascending.
func (s Schema) AvgPerBeneColumns() []string {
	years := s.Years()
	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, AvgPerBeneColumn(y))
	}
	return out
}

// SpendColumns lists every numeric column of the schema.
func (s Schema) SpendColumns() []string {
	return append(s.TotalColumns(), s.AvgPerBeneColumns()...)
}

// CheckFrame verifies that a loaded frame carries every required column.
func (s Schema) CheckFrame(df dataframe.DataFrame) error {
	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}
	required := append([]string{BrandColumn}, s.SpendColumns()...)
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("dataset is missing required column %q", col)
		}
	}
	return nil
}

// Dataset wraps the loaded tabular records. gota frames are immutable, so
// column rewrites swap the whole frame; callers treat the wrapper itself as
// the mutable, in-place dataset.
type Dataset struct {
	Frame dataframe.DataFrame
}

func (d *Dataset) Len() int {
	return d.Frame.Nrow()
}

// Brand returns the brand name key of a row, or "" when the cell is absent.
func (d *Dataset) Brand(row int) string {
	elem := d.Frame.Col(BrandColumn).Elem(row)
	if elem.IsNA() {
		return ""
	}
	return elem.String()
}

// Value returns a row's value in a spend column. ok is false when the cell
// is missing or not coercible to a number.
func (d *Dataset) Value(row int, col string) (float64, bool) {
	v := d.Frame.Col(col).Elem(row).Float()
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Column returns a spend column coerced to floats. Cells that cannot be
// coerced come back as NaN.
func (d *Dataset) Column(col string) []float64 {
	return d.Frame.Col(col).Float()
}

// SetColumn replaces a column with float values, keeping row order.
func (d *Dataset) SetColumn(col string, vals []float64) error {
	if len(vals) != d.Len() {
		return fmt.Errorf("column %q: got %d values for %d rows", col, len(vals), d.Len())
	}
	next := d.Frame.Mutate(series.New(vals, series.Float, col))
	if next.Err != nil {
		return fmt.Errorf("replace column %q: %w", col, next.Err)
	}
	d.Frame = next
	return nil
}

// History collects a row's values across an ordered column list. It fails on
// the first missing value, naming the offending column.
func (d *Dataset) History(row int, cols []string) ([]float64, error) {
	out := make([]float64, 0, len(cols))
	for _, col := range cols {
		v, ok := d.Value(row, col)
		if !ok {
			return nil, fmt.Errorf("value for %q is missing or not numeric", col)
		}
		out = append(out, v)
	}
	return out, nil
}
