package forecast

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// WriteCSV exports the structured forecast result, one row per drug per
// year, brands sorted for stable output.
func WriteCSV(path string, result Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"brand_name",
		"year",
		"predicted_total_spending",
		"predicted_avg_spend_per_bene",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	brands := make([]string, 0, len(result))
	for brand := range result {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	for _, brand := range brands {
		fc := result[brand]
		for i, year := range fc.Years {
			row := []string{
				brand,
				strconv.Itoa(year),
				fmtFloat(fc.TotalSpending[i]),
				fmtFloat(fc.AvgPerBene[i]),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
