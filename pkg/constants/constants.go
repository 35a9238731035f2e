// Package constants provides shared constants for the mortgage-planner application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PayoffEpsilon is the balance below which a loan counts as paid off (1 cent)
	PayoffEpsilon = 0.01

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// SafetyBoundMultiplier caps schedule iteration at this multiple of the term
	SafetyBoundMultiplier = 2
)

// Built-in loan defaults, used when the configuration leaves a field unset.
const (
	// DefaultPrincipal is the default loan principal
	DefaultPrincipal = 196687.0

	// DefaultAnnualRate is the default annual interest rate in percent
	DefaultAnnualRate = 2.85

	// DefaultTermYears is the default loan term in years
	DefaultTermYears = 23

	// DefaultStartYear is the default calendar year of the first payment
	DefaultStartYear = 2025

	// DefaultCurrency is the default display currency; all computation is
	// denominated in this currency and conversion is display-only
	DefaultCurrency = "EUR"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)

// Preference store constants
const (
	// CurrencyPreferenceKey is the fixed key under which the display
	// currency code is persisted
	CurrencyPreferenceKey = "currency"
)
