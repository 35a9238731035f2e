package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/finhouse/mortgage-planner/pkg/amortize"
)

// csvHeader lists the per-month columns in export order.
var csvHeader = []string{
	"month", "year", "scheduledPayment", "principal", "interest",
	"overpayment", "lumpSum", "totalPayment", "endingBalance",
}

// WriteCSV writes the full schedule followed by a summary block. The summary
// block is separated from the row data by an empty record so spreadsheet
// imports keep the table rectangular.
func WriteCSV(w io.Writer, result amortize.Result, summary Summary) error {
	if len(result.Rows) == 0 {
		return ErrEmptySchedule
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range result.Rows {
		record := []string{
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			money(row.ScheduledPayment),
			money(row.PrincipalPortion),
			money(row.InterestPortion),
			money(row.OverpaymentPortion),
			money(row.LumpSumPortion),
			money(row.TotalPayment),
			money(row.EndingBalance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.Month, err)
		}
	}

	summaryRecords := [][]string{
		{""},
		{"principal", money(summary.Principal)},
		{"annualRate", strconv.FormatFloat(summary.AnnualRate, 'f', 2, 64)},
		{"termMonths", strconv.Itoa(summary.TermMonths)},
		{"monthlyPayment", money(summary.MonthlyPayment)},
		{"totalInterest", money(summary.TotalInterest)},
		{"totalCost", money(summary.TotalCost)},
		{"totalMonths", strconv.Itoa(summary.TotalMonths)},
		{"currency", summary.Currency},
	}
	for _, record := range summaryRecords {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(val float64) string {
	return strconv.FormatFloat(val, 'f', 2, 64)
}
