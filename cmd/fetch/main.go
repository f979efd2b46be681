package main

import (
	"flag"
	"fmt"
	"os"

	"drug-spend-forecast/internal/config"
	"drug-spend-forecast/internal/data"
	"drug-spend-forecast/internal/logging"
)

// fetch downloads a drug spending dataset from the data.cms.gov data API and
// writes it to the local JSON file the pipeline reads.
func main() {
	var (
		datasetID = flag.String("dataset", "", "data.cms.gov dataset UUID (or CMS_DATASET_ID env)")
		baseURL   = flag.String("base-url", "", "Data API base URL (default: https://data.cms.gov)")
		output    = flag.String("output", "", "Output file path (default: drug_data.json)")
		cfgPath   = flag.String("config", "", "Path to YAML config (optional)")
		pageSize  = flag.Int("size", 1000, "Rows per API request")
		maxRows   = flag.Int("max", 0, "Stop after this many rows (0 = all)")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Printf("invalid config %s: %v\n", *cfgPath, err)
			os.Exit(2)
		}
		cfg = loaded
	}

	id := *datasetID
	if id == "" {
		id = cfg.Data.DatasetID
	}
	if id == "" {
		id = os.Getenv("CMS_DATASET_ID")
	}
	if id == "" {
		fmt.Println("--dataset (or data.dataset_id in config, or CMS_DATASET_ID) is required")
		os.Exit(2)
	}

	base := *baseURL
	if base == "" {
		base = cfg.Data.BaseURL
	}
	out := *output
	if out == "" {
		out = cfg.Data.Path
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(2)
	}

	client := data.NewCMSClient(base, logger)

	fmt.Printf("Fetching dataset %s...\n", id)
	records, err := client.FetchDataset(data.FetchParams{
		DatasetID: id,
		PageSize:  *pageSize,
		MaxRows:   *maxRows,
	})
	if err != nil {
		logger.WithError(err).Fatal("fetch failed")
	}

	if err := data.SaveDataset(records, out); err != nil {
		logger.WithError(err).Fatal("save failed")
	}

	fmt.Printf("Saved %d records to %s\n", len(records), out)
}
