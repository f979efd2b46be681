package main

import (
	"flag"
	"fmt"
	"os"

	"drug-spend-forecast/internal/config"
	"drug-spend-forecast/internal/logging"
	"drug-spend-forecast/internal/pipeline"
)

func main() {
	// No arguments runs the full pipeline against the default local file.
	if len(os.Args) < 2 {
		cmdForecast(nil)
		return
	}

	switch os.Args[1] {
	case "forecast":
		cmdForecast(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli                 run the full pipeline with defaults (drug_data.json)")
	fmt.Println("  cli forecast [--data drug_data.json] [--config config.yaml] [--horizon 3] [--out results/forecast.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - the pipeline runs load -> preprocess -> train -> forecast, halting on stage failure")
	fmt.Println("  - progress and errors go to stdout and the log file (drug_predictor.log by default)")
}

func cmdForecast(args []string) {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to drug spending JSON (default: drug_data.json)")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	horizon := fs.Int("horizon", 0, "Number of future years to predict (default: 3)")
	outPath := fs.String("out", "", "Optional: write forecast CSV to this path")
	logFile := fs.String("log-file", "", "Log file path (default: drug_predictor.log)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	_ = fs.Parse(args)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Printf("invalid config %s: %v\n", *cfgPath, err)
			os.Exit(2)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *horizon > 0 {
		cfg.Forecast.HorizonYears = *horizon
	}
	if *outPath != "" {
		cfg.Forecast.OutCSV = *outPath
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(2)
	}

	// Stage failures are reported through the logs; the process still exits
	// zero so callers distinguish outcomes from the output, not the code.
	runner := pipeline.New(cfg, logger)
	runner.Run(os.Stdout)
}
