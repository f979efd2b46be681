// Package pipeline drives the four stages of the forecasting run:
// load, preprocess, train, forecast. Stages execute strictly in sequence
// and each one is gated on the success of the previous.
package pipeline

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"drug-spend-forecast/internal/config"
	"drug-spend-forecast/internal/data"
	"drug-spend-forecast/internal/forecast"
	"drug-spend-forecast/internal/model"
	"drug-spend-forecast/internal/preprocess"
	"drug-spend-forecast/internal/train"
)

// Stage is the pipeline progress marker. Keep these values stable; they are
// logged verbatim.
type Stage string

const (
	StageIdle         Stage = "IDLE"
	StageLoaded       Stage = "LOADED"
	StagePreprocessed Stage = "PREPROCESSED"
	StageTrained      Stage = "TRAINED"
	StageForecasted   Stage = "FORECASTED"
	StageHalted       Stage = "HALTED"
)

// Runner owns all pipeline state: the dataset, the trained model pair maps,
// and the forecast result. It is single-threaded by design; nothing here
// needs locking.
type Runner struct {
	cfg *config.Config
	log logrus.FieldLogger

	stage  Stage
	ds     *model.Dataset
	models *model.ModelSet
	result forecast.Result
}

func New(cfg *config.Config, log logrus.FieldLogger) *Runner {
	return &Runner{
		cfg:   cfg,
		log:   log,
		stage: StageIdle,
	}
}

func (r *Runner) Stage() Stage {
	return r.stage
}

// Result returns the structured forecast, nil until a run completes.
func (r *Runner) Result() forecast.Result {
	return r.result
}

// Run executes the full pipeline, printing progress and the prediction
// report to out. A stage failure is logged with context and halts
// progression; Run never panics and the returned result is nil on halt.
func (r *Runner) Run(out io.Writer) forecast.Result {
	fmt.Fprintln(out, "Loading data...")
	if err := r.load(); err != nil {
		r.halt("load", err)
		return nil
	}

	fmt.Fprintln(out, "Processing data...")
	if err := r.preprocessData(); err != nil {
		r.halt("preprocess", err)
		return nil
	}

	fmt.Fprintln(out, "Training models...")
	if err := r.trainModels(); err != nil {
		r.halt("train", err)
		return nil
	}

	fmt.Fprintln(out, "\nMaking predictions...")
	if err := r.predict(out); err != nil {
		r.halt("forecast", err)
		return nil
	}

	return r.result
}

func (r *Runner) halt(stageName string, err error) {
	r.stage = StageHalted
	r.log.WithError(err).Errorf("pipeline halted during %s", stageName)
}

func (r *Runner) load() error {
	path := r.cfg.Data.Path
	r.log.Infof("Loading data from: %s", path)

	ds, err := data.LoadLocalJSON(path, r.cfg.Schema())
	if err != nil {
		return err
	}
	r.ds = ds
	r.stage = StageLoaded
	r.log.Infof("Successfully loaded %d records", ds.Len())
	return nil
}

func (r *Runner) preprocessData() error {
	report, err := preprocess.Clean(r.ds, r.cfg.Schema())
	if err != nil {
		return err
	}
	for _, col := range report.Columns {
		if col.Missing == 0 {
			continue
		}
		r.log.WithFields(logrus.Fields{
			"column":  col.Column,
			"missing": col.Missing,
			"imputed": col.Imputed,
		}).Warn("column had non-numeric values")
	}
	if still := report.TotalMissing(); still > 0 {
		r.log.Warnf("%d values could not be imputed (no valid values in their column)", still)
	}
	r.stage = StagePreprocessed
	r.log.Info("Data preprocessing completed successfully")
	return nil
}

func (r *Runner) trainModels() error {
	set, err := train.Fit(r.ds, r.cfg.Schema(), r.log)
	if err != nil {
		return err
	}
	r.models = set
	r.stage = StageTrained
	return nil
}

func (r *Runner) predict(out io.Writer) error {
	result, err := forecast.Run(r.models, r.cfg.ForecastStartYear(), r.cfg.Forecast.HorizonYears, r.log)
	if err != nil {
		return err
	}
	forecast.WriteReport(out, result)

	if path := r.cfg.Forecast.OutCSV; path != "" {
		if err := forecast.WriteCSV(path, result); err != nil {
			// The in-memory result is still good; the export is best-effort.
			r.log.WithError(err).Error("failed to write forecast CSV")
		} else {
			r.log.Infof("Wrote forecast CSV: %s", path)
		}
	}

	r.result = result
	r.stage = StageForecasted
	return nil
}
