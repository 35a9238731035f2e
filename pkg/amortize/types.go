package amortize

// LoanParameters holds the immutable inputs describing the loan itself.
type LoanParameters struct {
	// Principal is the initial balance owed.
	Principal float64
	// AnnualRate is the baseline annual interest rate in percent.
	AnnualRate float64
	// TermMonths is the originally scheduled number of payments.
	TermMonths int
	// StartYear is the calendar year the first payment falls in.
	StartYear int
}

// OverpaymentPolicy describes a constant monthly extra principal payment.
// A zero Monthly amount disables overpayment.
type OverpaymentPolicy struct {
	Monthly float64
}

// LumpSum is a one-time extra principal payment applied in the first month
// of the given calendar year.
type LumpSum struct {
	Year   int
	Amount float64
}

// RatePeriod overrides the baseline rate for every month whose calendar
// year falls in [StartYear, EndYear] inclusive. Periods may overlap; the
// earliest-starting period wins for any contested year.
type RatePeriod struct {
	StartYear  int
	EndYear    int
	AnnualRate float64
}

// ScheduleRow holds the values for a single month of the schedule.
// All monetary fields are non-negative.
type ScheduleRow struct {
	Month              int     `json:"month"` // 1-based sequential index
	Year               int     `json:"year"`
	MonthOfYear        int     `json:"monthOfYear"` // 1-12
	ScheduledPayment   float64 `json:"scheduledPayment"`
	PrincipalPortion   float64 `json:"principal"`
	InterestPortion    float64 `json:"interest"`
	OverpaymentPortion float64 `json:"overpayment"`
	LumpSumPortion     float64 `json:"lumpSum"`
	TotalPayment       float64 `json:"totalPayment"`
	EndingBalance      float64 `json:"endingBalance"`
}

// RateChangeEvent marks a month where the effective rate differs from the
// prior month's. Month 1 is always recorded as establishing the initial rate.
type RateChangeEvent struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	AnnualRate float64 `json:"annualRate"`
	// Payment is the scheduled payment in effect from this month on. For
	// month 1 this is the initial payment; otherwise it is the payment
	// recomputed over the remaining term at the new rate.
	Payment float64 `json:"payment"`
}

// Outcome reports how schedule generation terminated.
type Outcome int

const (
	// OutcomePaidOff means the balance reached zero within the epsilon.
	OutcomePaidOff Outcome = iota
	// OutcomeIterationBound means the safety bound was reached before
	// payoff and the schedule was truncated there.
	OutcomeIterationBound
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePaidOff:
		return "paid-off"
	case OutcomeIterationBound:
		return "iteration-bound"
	default:
		return "unknown"
	}
}

// Result holds the complete output of one schedule computation.
type Result struct {
	// InitialPayment is the scheduled payment computed from the baseline
	// rate over the full term.
	InitialPayment float64
	// Rows is the ordered month-by-month schedule.
	Rows []ScheduleRow
	// Balances is the balance sequence including the starting balance,
	// so len(Balances) == len(Rows)+1.
	Balances []float64
	// PrincipalPaid and InterestPaid hold the per-month amounts, one entry
	// per row.
	PrincipalPaid []float64
	InterestPaid  []float64
	// CumulativePrincipal and CumulativeInterest are running totals with a
	// leading zero entry, so their length is len(Rows)+1.
	CumulativePrincipal []float64
	CumulativeInterest  []float64
	// RateChanges lists every month whose effective rate differs from the
	// preceding month's, month 1 included.
	RateChanges []RateChangeEvent
	// TotalInterest is the interest paid over the whole schedule.
	TotalInterest float64
	// TotalMonths is the number of months actually elapsed; overpayments
	// and lump sums can make this smaller than the term.
	TotalMonths int
	// Outcome distinguishes payoff from safety-bound truncation.
	Outcome Outcome
}
