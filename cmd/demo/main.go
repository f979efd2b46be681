package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"drug-spend-forecast/internal/config"
	"drug-spend-forecast/internal/data"
	"drug-spend-forecast/internal/logging"
	"drug-spend-forecast/internal/model"
	"drug-spend-forecast/internal/pipeline"
)

// Demo:
// - Generate a small synthetic drug spending dataset, including one drug
//   with a junk cell (recovered via imputation) and numeric-as-string values
// - Write it to a JSON file
// - Run the full pipeline over it to show how the stages fit together
func main() {
	outPath := flag.String("out", "demo_drug_data.json", "Where to write the synthetic dataset")
	drugs := flag.Int("drugs", 6, "Number of synthetic drugs to generate")
	horizon := flag.Int("horizon", 3, "Forecast horizon in years")
	run := flag.Bool("run", true, "Run the pipeline after generating the dataset")
	flag.Parse()

	cfg := config.Default()
	cfg.Data.Path = *outPath
	cfg.Forecast.HorizonYears = *horizon
	cfg.Log.File = "" // demo logs to stdout only

	records := generate(*drugs, cfg.Schema())
	if err := data.SaveDataset(records, *outPath); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d synthetic records to %s\n", len(records), *outPath)

	if !*run {
		return
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(err)
	}

	runner := pipeline.New(cfg, logger)
	runner.Run(os.Stdout)
	fmt.Printf("\nDone. Pipeline stage=%s\n", runner.Stage())
}

func generate(n int, schema model.Schema) []map[string]any {
	// Fixed seed so demo runs are reproducible.
	rng := rand.New(rand.NewSource(42))

	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rec := map[string]any{
			model.BrandColumn: fmt.Sprintf("Drug %c", 'A'+i%26),
		}
		baseTotal := 50_000 + rng.Float64()*500_000
		slopeTotal := 5_000 + rng.Float64()*50_000
		baseAvg := 100 + rng.Float64()*2_000
		slopeAvg := 10 + rng.Float64()*200

		for j, year := range schema.Years() {
			total := baseTotal + slopeTotal*float64(j)
			avg := baseAvg + slopeAvg*float64(j)

			switch {
			case i == 1 && j == 2:
				// One junk cell; the preprocessor imputes it from the column mean.
				rec[model.TotalColumn(year)] = "suppressed"
				rec[model.AvgPerBeneColumn(year)] = avg
			case i == 2:
				// Numeric-as-string, the way the CMS extract often arrives.
				rec[model.TotalColumn(year)] = fmt.Sprintf("%.2f", total)
				rec[model.AvgPerBeneColumn(year)] = fmt.Sprintf("%.2f", avg)
			default:
				rec[model.TotalColumn(year)] = total
				rec[model.AvgPerBeneColumn(year)] = avg
			}
		}
		records = append(records, rec)
	}
	return records
}
