// Package train fits one linear model per drug per spend metric over the
// historical year window.
package train

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"drug-spend-forecast/internal/model"
)

// Fit trains the model pair for every drug in the dataset. A drug whose
// history is still incomplete after preprocessing is logged and skipped; the
// rest of the batch is unaffected. Fit fails only when no drug trains.
func Fit(ds *model.Dataset, schema model.Schema, log logrus.FieldLogger) (*model.ModelSet, error) {
	if ds == nil {
		return nil, errors.New("no dataset available for training")
	}

	years := schema.Years()
	xs := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
	}

	totalCols := schema.TotalColumns()
	avgCols := schema.AvgPerBeneColumns()

	set := model.NewModelSet()
	for row := 0; row < ds.Len(); row++ {
		brand := ds.Brand(row)
		if brand == "" {
			log.WithField("row", row).Warn("skipping record with no brand name")
			continue
		}

		total, err := ds.History(row, totalCols)
		if err != nil {
			log.WithField("brand", brand).WithError(err).Error("skipping drug: total spending history unusable")
			continue
		}
		avg, err := ds.History(row, avgCols)
		if err != nil {
			log.WithField("brand", brand).WithError(err).Error("skipping drug: avg spending history unusable")
			continue
		}

		totalModel := fitOLS(xs, total)
		avgModel := fitOLS(xs, avg)
		if !totalModel.Valid() || !avgModel.Valid() {
			log.WithField("brand", brand).Error("skipping drug: fit produced non-finite coefficients")
			continue
		}

		if _, dup := set.Total[brand]; dup {
			log.WithField("brand", brand).Warn("duplicate brand name, keeping the later record")
		}
		// Stored as a pair so a brand is in both mappings or neither.
		set.Put(brand, totalModel, avgModel)
	}

	if set.Len() == 0 {
		return nil, errors.New("no drugs could be trained")
	}
	log.Infof("Successfully trained models for %d drugs", set.Len())
	return set, nil
}

// fitOLS runs a plain least-squares fit, no regularization or scaling.
func fitOLS(xs, ys []float64) model.LinearModel {
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return model.LinearModel{Slope: slope, Intercept: intercept}
}
