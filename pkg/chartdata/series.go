// Package chartdata derives yearly-sampled series from a computed schedule
// for charting collaborators. The sampling mirrors the four chart panels of
// the visualisation: remaining balance, payment breakdown, cumulative
// payments, and the principal share of each year's payments.
package chartdata

import (
	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/constants"
	"github.com/finhouse/mortgage-planner/pkg/mathutil"
)

// YearPoint is a single yearly sample.
type YearPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// YearBreakdown holds one calendar year's principal and interest totals.
type YearBreakdown struct {
	Year      int     `json:"year"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
}

// Series bundles every chart series derived from one schedule.
type Series struct {
	// Balance samples the remaining balance at each year boundary,
	// starting with the initial balance, plus the final state when the
	// schedule ends mid-year.
	Balance []YearPoint `json:"balance"`
	// Breakdown sums principal and interest paid per calendar year.
	Breakdown []YearBreakdown `json:"breakdown"`
	// CumulativePrincipal and CumulativeInterest sample the running
	// totals at the same boundaries as Balance.
	CumulativePrincipal []YearPoint `json:"cumulativePrincipal"`
	CumulativeInterest  []YearPoint `json:"cumulativeInterest"`
	// PrincipalShare is the percentage of each year's payments that went
	// to principal reduction.
	PrincipalShare []YearPoint `json:"principalShare"`
}

// Build derives all chart series from a schedule result. startYear must be
// the same start year the schedule was computed with.
func Build(result amortize.Result, startYear int) Series {
	var series Series

	// Year-boundary samples over the balance-style sequences. Index k*12
	// is the state after k full years; the final index is included when
	// the schedule ends partway through a year.
	sample := func(values []float64) []YearPoint {
		var points []YearPoint
		for i := 0; i < len(values); i += constants.MonthsPerYear {
			points = append(points, YearPoint{Year: startYear + i/constants.MonthsPerYear, Value: values[i]})
		}
		last := len(values) - 1
		if last >= 0 && last%constants.MonthsPerYear != 0 {
			points = append(points, YearPoint{
				Year:  startYear + (last+constants.MonthsPerYear-1)/constants.MonthsPerYear,
				Value: values[last],
			})
		}
		return points
	}

	series.Balance = sample(result.Balances)
	series.CumulativePrincipal = sample(result.CumulativePrincipal)
	series.CumulativeInterest = sample(result.CumulativeInterest)

	for _, row := range result.Rows {
		if n := len(series.Breakdown); n == 0 || series.Breakdown[n-1].Year != row.Year {
			series.Breakdown = append(series.Breakdown, YearBreakdown{Year: row.Year})
		}
		entry := &series.Breakdown[len(series.Breakdown)-1]
		entry.Principal += row.PrincipalPortion + row.OverpaymentPortion + row.LumpSumPortion
		entry.Interest += row.InterestPortion
	}

	for _, entry := range series.Breakdown {
		series.PrincipalShare = append(series.PrincipalShare, YearPoint{
			Year:  entry.Year,
			Value: mathutil.PercentageOf(entry.Principal, entry.Principal+entry.Interest),
		})
	}

	return series
}
