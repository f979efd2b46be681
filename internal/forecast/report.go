package forecast

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Currency renders a dollar amount with thousands separators and exactly two
// decimal places, e.g. "$1,234.50".
func Currency(v float64) string {
	return currencyPrinter.Sprintf("$%v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// WriteReport prints the per-drug, per-year prediction report, brands in
// sorted order.
func WriteReport(w io.Writer, result Result) {
	brands := make([]string, 0, len(result))
	for brand := range result {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	for _, brand := range brands {
		f := result[brand]
		fmt.Fprintf(w, "\nPredictions for %s:\n", brand)
		for i, year := range f.Years {
			fmt.Fprintf(w, "Year %d:\n", year)
			fmt.Fprintf(w, "  Predicted Total Spending: %s\n", Currency(f.TotalSpending[i]))
			fmt.Fprintf(w, "  Predicted Avg Spending per Beneficiary: %s\n", Currency(f.AvgPerBene[i]))
		}
	}
}
