// Package forecast extrapolates trained models to future years and renders
// the prediction report.
package forecast

import (
	"errors"

	"github.com/sirupsen/logrus"

	"drug-spend-forecast/internal/model"
)

// DefaultHorizon is how many future years are predicted when the caller does
// not ask for a specific horizon.
const DefaultHorizon = 3

// DrugForecast holds the predictions for one drug across the horizon.
type DrugForecast struct {
	Years         []int
	TotalSpending []float64
	AvgPerBene    []float64
}

// Result maps brand name to its forecast.
type Result map[string]DrugForecast

// Run predicts both metrics for every trained drug over consecutive years
// starting at startYear. A drug whose model pair is unusable is logged and
// skipped. Run fails only when no models exist at all.
func Run(set *model.ModelSet, startYear, horizon int, log logrus.FieldLogger) (Result, error) {
	if set == nil || set.Len() == 0 {
		return nil, errors.New("no trained models available")
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	result := Result{}
	for _, brand := range set.Brands() {
		totalModel, okTotal := set.Total[brand]
		avgModel, okAvg := set.AvgPerBene[brand]
		if !okTotal || !okAvg || !totalModel.Valid() || !avgModel.Valid() {
			log.WithField("brand", brand).Error("prediction skipped: model pair incomplete or invalid")
			continue
		}

		f := DrugForecast{
			Years:         make([]int, 0, horizon),
			TotalSpending: make([]float64, 0, horizon),
			AvgPerBene:    make([]float64, 0, horizon),
		}
		for year := startYear; year < startYear+horizon; year++ {
			f.Years = append(f.Years, year)
			f.TotalSpending = append(f.TotalSpending, totalModel.Predict(year))
			f.AvgPerBene = append(f.AvgPerBene, avgModel.Predict(year))
		}
		result[brand] = f
	}

	if len(result) == 0 {
		return nil, errors.New("no predictions could be produced")
	}
	return result, nil
}
