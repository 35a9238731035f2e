// Package amortize computes mortgage amortization schedules with support for
// recurring overpayments, one-time lump sums, and multiple interest-rate
// periods over the loan term. Schedule is a pure function: no I/O, no shared
// state, safe for concurrent use.
package amortize

import (
	"math"
	"sort"

	"github.com/finhouse/mortgage-planner/pkg/constants"
	"github.com/finhouse/mortgage-planner/pkg/mathutil"
)

// MonthlyPayment calculates the constant payment that repays principal over
// termMonths at the given annual rate using the standard annuity formula.
// A zero rate degenerates to straight-line repayment.
func MonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if annualRate == 0 {
		return principal / float64(termMonths)
	}

	monthlyRate := annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1.00)
}

// InterestPayment calculates the interest accrued on a balance for one month.
func InterestPayment(balance, annualRate float64) float64 {
	return balance * annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// resolveRate selects the effective annual rate for a calendar year. The
// periods must already be sorted by StartYear ascending; the first period
// containing the year wins, so earlier-starting overlapping periods take
// precedence. Inverted periods (EndYear < StartYear) never match.
func resolveRate(periods []RatePeriod, year int, defaultRate float64) float64 {
	for _, period := range periods {
		if year >= period.StartYear && year <= period.EndYear {
			return period.AnnualRate
		}
	}
	return defaultRate
}

// lumpSumForMonth sums every lump sum whose target month equals month.
// The target month is the first month of the lump sum's calendar year;
// amounts outside the schedule simply never come up.
func lumpSumForMonth(lumpSums []LumpSum, startYear, month int) float64 {
	amount := 0.00
	for _, ls := range lumpSums {
		if (ls.Year-startYear)*constants.MonthsPerYear+1 == month {
			amount += ls.Amount
		}
	}
	return amount
}

// Schedule computes the full amortization schedule for the given inputs.
// It never fails: malformed lump sums or rate periods simply never match,
// and pathological inputs that do not amortize are truncated at the safety
// bound with OutcomeIterationBound.
func Schedule(params LoanParameters, policy OverpaymentPolicy, lumpSums []LumpSum, ratePeriods []RatePeriod) Result {
	// Sort a copy so the caller's slice stays untouched; the stable sort
	// keeps the supplied order among periods sharing a start year.
	periods := make([]RatePeriod, len(ratePeriods))
	copy(periods, ratePeriods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartYear < periods[j].StartYear
	})

	payment := MonthlyPayment(params.Principal, params.AnnualRate, params.TermMonths)

	result := Result{
		InitialPayment:      payment,
		Balances:            []float64{params.Principal},
		CumulativePrincipal: []float64{0},
		CumulativeInterest:  []float64{0},
		Outcome:             OutcomeIterationBound,
	}

	balance := params.Principal
	previousRate := math.NaN()
	maxMonths := constants.SafetyBoundMultiplier * params.TermMonths

	for month := 1; month <= maxMonths; month++ {
		year := params.StartYear + (month-1)/constants.MonthsPerYear
		monthOfYear := (month-1)%constants.MonthsPerYear + 1

		rate := resolveRate(periods, year, params.AnnualRate)
		if month == 1 {
			// The first month establishes the initial rate; the payment
			// stays the one computed over the full term at the baseline
			// rate.
			result.RateChanges = append(result.RateChanges, RateChangeEvent{
				Month:      month,
				Year:       year,
				AnnualRate: rate,
				Payment:    payment,
			})
		} else if rate != previousRate {
			// Remaining payments can only drop below one in the truncation
			// region past the original term.
			remainingPayments := params.TermMonths - month + 1
			if remainingPayments < 1 {
				remainingPayments = 1
			}
			payment = MonthlyPayment(balance, rate, remainingPayments)
			result.RateChanges = append(result.RateChanges, RateChangeEvent{
				Month:      month,
				Year:       year,
				AnnualRate: rate,
				Payment:    payment,
			})
		}
		previousRate = rate

		interest := InterestPayment(balance, rate)

		// The base principal portion is clamped at zero so the balance
		// never grows; inputs with negative effective amortization stall
		// here and run into the safety bound instead.
		basePrincipal := mathutil.Max(0, payment-interest)

		// Fill principal reduction in order base payment, overpayment,
		// lump sum, each capped by what is left of the balance.
		principalPortion := mathutil.Min(basePrincipal, balance)
		remaining := balance - principalPortion
		overpaymentPortion := mathutil.Min(policy.Monthly, remaining)
		remaining -= overpaymentPortion
		lumpSumPortion := mathutil.Min(lumpSumForMonth(lumpSums, params.StartYear, month), remaining)

		reduction := principalPortion + overpaymentPortion + lumpSumPortion
		balance -= reduction
		if balance <= constants.PayoffEpsilon {
			// Snap to zero rather than carrying machine-error residue.
			balance = 0.00
		}

		result.Rows = append(result.Rows, ScheduleRow{
			Month:              month,
			Year:               year,
			MonthOfYear:        monthOfYear,
			ScheduledPayment:   payment,
			PrincipalPortion:   principalPortion,
			InterestPortion:    interest,
			OverpaymentPortion: overpaymentPortion,
			LumpSumPortion:     lumpSumPortion,
			TotalPayment:       interest + reduction,
			EndingBalance:      balance,
		})
		result.Balances = append(result.Balances, balance)
		result.PrincipalPaid = append(result.PrincipalPaid, reduction)
		result.InterestPaid = append(result.InterestPaid, interest)
		result.CumulativePrincipal = append(result.CumulativePrincipal,
			result.CumulativePrincipal[len(result.CumulativePrincipal)-1]+reduction)
		result.CumulativeInterest = append(result.CumulativeInterest,
			result.CumulativeInterest[len(result.CumulativeInterest)-1]+interest)
		result.TotalInterest += interest

		if balance == 0.00 {
			result.Outcome = OutcomePaidOff
			break
		}
	}

	result.TotalMonths = len(result.Rows)
	return result
}
