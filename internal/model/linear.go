package model

import (
	"math"
	"sort"
)

// LinearModel is one ordinary least-squares fit of a spend metric against the
// calendar year. Models are created by the trainer and read-only afterwards.
type LinearModel struct {
	Slope     float64
	Intercept float64
}

// Predict extrapolates the fitted trend to a year.
func (m LinearModel) Predict(year int) float64 {
	return m.Slope*float64(year) + m.Intercept
}

// Valid reports whether the fit produced finite coefficients.
func (m LinearModel) Valid() bool {
	return !math.IsNaN(m.Slope) && !math.IsInf(m.Slope, 0) &&
		!math.IsNaN(m.Intercept) && !math.IsInf(m.Intercept, 0)
}

// ModelSet holds the per-brand fits, one pair per trained drug.
// Invariant: Total and AvgPerBene carry exactly the same brand keys, because
// the two models of a drug are only ever stored together via Put.
type ModelSet struct {
	Total      map[string]LinearModel
	AvgPerBene map[string]LinearModel
}

func NewModelSet() *ModelSet {
	return &ModelSet{
		Total:      map[string]LinearModel{},
		AvgPerBene: map[string]LinearModel{},
	}
}

// Put stores the trained pair for a brand.
func (s *ModelSet) Put(brand string, total, avgPerBene LinearModel) {
	s.Total[brand] = total
	s.AvgPerBene[brand] = avgPerBene
}

func (s *ModelSet) Len() int {
	return len(s.Total)
}

// Brands returns the trained brand names in sorted order, so report output
// is deterministic.
func (s *ModelSet) Brands() []string {
	out := make([]string, 0, len(s.Total))
	for brand := range s.Total {
		out = append(out, brand)
	}
	sort.Strings(out)
	return out
}
