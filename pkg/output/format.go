// Package output provides utilities for formatting and displaying schedule
// results on the command line.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/chartdata"
	"github.com/finhouse/mortgage-planner/pkg/currency"
	"github.com/finhouse/mortgage-planner/pkg/export"
)

// PrettyFormat writes a human-readable summary and per-year table.
func PrettyFormat(w io.Writer, result amortize.Result, summary export.Summary) {
	rule := strings.Repeat("=", 50)
	code := summary.Currency

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "MORTGAGE SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Loan Amount:        %s\n", currency.Format(summary.Principal, code))
	fmt.Fprintf(w, "Interest Rate:      %.2f%%\n", summary.AnnualRate)
	fmt.Fprintf(w, "Term:               %d years (%d payments)\n",
		summary.TermMonths/12, summary.TermMonths)
	fmt.Fprintf(w, "Monthly Payment:    %s\n", currency.Format(summary.MonthlyPayment, code))
	fmt.Fprintf(w, "Total Interest:     %s\n", currency.Format(summary.TotalInterest, code))
	fmt.Fprintf(w, "Total Cost:         %s\n", currency.Format(summary.TotalCost, code))
	if summary.TotalMonths != summary.TermMonths {
		fmt.Fprintf(w, "Months to Payoff:   %d\n", summary.TotalMonths)
	}
	fmt.Fprintln(w, rule)

	if len(result.RateChanges) > 1 {
		fmt.Fprintln(w, "\nRate changes:")
		for _, event := range result.RateChanges {
			fmt.Fprintf(w, "  month %4d (%d): %.2f%% -> payment %s\n",
				event.Month, event.Year, event.AnnualRate, currency.Format(event.Payment, code))
		}
	}

	if len(result.Rows) == 0 {
		return
	}

	startYear := result.Rows[0].Year
	series := chartdata.Build(result, startYear)

	fmt.Fprintln(w, "\nYear   | Principal Paid | Interest Paid  | Balance")
	fmt.Fprintln(w, "____   | ______________ | _____________  | _______")
	balanceByYear := make(map[int]float64, len(series.Balance))
	for _, point := range series.Balance {
		balanceByYear[point.Year] = point.Value
	}
	for _, entry := range series.Breakdown {
		fmt.Fprintf(w, "%d   | %14s | %14s | %s\n",
			entry.Year,
			currency.Format(entry.Principal, code),
			currency.Format(entry.Interest, code),
			currency.Format(balanceByYear[entry.Year+1], code))
	}

	if result.Outcome == amortize.OutcomeIterationBound {
		fmt.Fprintf(w, "\nWARNING: schedule truncated at the %d-month safety bound without payoff\n",
			result.TotalMonths)
	}
}

// CsvFormat writes the schedule in comma-separated value format.
func CsvFormat(w io.Writer, result amortize.Result, summary export.Summary) error {
	return export.WriteCSV(w, result, summary)
}
