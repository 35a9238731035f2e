// Package export serializes a computed schedule to CSV or a paginated PDF
// document. It consumes engine output verbatim; the only failure it reports
// is an empty schedule.
package export

import (
	"errors"

	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/mathutil"
)

// ErrEmptySchedule is returned when there are no schedule rows to export.
var ErrEmptySchedule = errors.New("schedule contains no rows")

// Summary is the small record accompanying an exported schedule.
type Summary struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annualRate"`
	TermMonths     int     `json:"termMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
	TotalMonths    int     `json:"totalMonths"`
	Currency       string  `json:"currency"`
}

// BuildSummary derives the summary record from loan parameters and a result.
// Monetary figures are rounded to cents; the per-month rows keep the raw
// engine values.
func BuildSummary(params amortize.LoanParameters, result amortize.Result, currency string) Summary {
	return Summary{
		Principal:      params.Principal,
		AnnualRate:     params.AnnualRate,
		TermMonths:     params.TermMonths,
		MonthlyPayment: mathutil.Round(result.InitialPayment),
		TotalInterest:  mathutil.Round(result.TotalInterest),
		TotalCost:      mathutil.Round(params.Principal + result.TotalInterest),
		TotalMonths:    result.TotalMonths,
		Currency:       currency,
	}
}
