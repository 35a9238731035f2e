// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving it into engine
// inputs.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/constants"
	"github.com/finhouse/mortgage-planner/pkg/currency"
	"github.com/finhouse/mortgage-planner/pkg/mathutil"
)

// Configuration holds all configuration for mortgage-planner. Every field is
// optional; Resolve fills unset fields from the built-in defaults.
type Configuration struct {
	Principal          float64            `yaml:"principal,omitempty"`
	AnnualRate         float64            `yaml:"annualRate,omitempty"`
	TermYears          int                `yaml:"termYears,omitempty"`
	StartYear          int                `yaml:"startYear,omitempty"`
	EnableOverpayment  bool               `yaml:"enableOverpayment,omitempty"`
	MonthlyOverpayment float64            `yaml:"monthlyOverpayment,omitempty"`
	LumpSums           []LumpSumConfig    `yaml:"lumpSums,omitempty"`
	RatePeriods        []RatePeriodConfig `yaml:"ratePeriods,omitempty"`
	Currency           string             `yaml:"currency,omitempty"`
	Logging            LoggingConfig      `yaml:"logging,omitempty"`
	Output             OutputConfig       `yaml:"output,omitempty"`
}

// LumpSumConfig is a one-time extra payment in a given calendar year.
type LumpSumConfig struct {
	Year   int     `yaml:"year"`
	Amount float64 `yaml:"amount"`
}

// RatePeriodConfig overrides the interest rate for an inclusive year range.
type RatePeriodConfig struct {
	StartYear int     `yaml:"startYear"`
	EndYear   int     `yaml:"endYear"`
	Rate      float64 `yaml:"rate"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, pdf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. The wrapped error keeps the underlying cause
// inspectable so callers can treat a missing file as "use the defaults".
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Inputs is a fully-resolved set of engine inputs plus the display currency.
// The engine only ever sees resolved values; there are no fallback lookups
// past this point.
type Inputs struct {
	Params      amortize.LoanParameters
	Policy      amortize.OverpaymentPolicy
	LumpSums    []amortize.LumpSum
	RatePeriods []amortize.RatePeriod
	Currency    string
}

// Resolve merges the configuration with the built-in defaults into one
// fully-populated input set. Unset or non-positive core parameters fall back
// to the defaults; lump sums and rate periods pass through as given since
// the engine tolerates entries that never match.
func (c *Configuration) Resolve() Inputs {
	inputs := Inputs{
		Params: amortize.LoanParameters{
			Principal:  c.Principal,
			AnnualRate: c.AnnualRate,
			TermMonths: c.TermYears * constants.MonthsPerYear,
			StartYear:  c.StartYear,
		},
		Currency: c.Currency,
	}

	if inputs.Params.Principal <= 0 {
		inputs.Params.Principal = constants.DefaultPrincipal
	}
	if inputs.Params.AnnualRate < 0 {
		inputs.Params.AnnualRate = constants.DefaultAnnualRate
	}
	if inputs.Params.TermMonths <= 0 {
		inputs.Params.TermMonths = constants.DefaultTermYears * constants.MonthsPerYear
	}
	if inputs.Params.StartYear == 0 {
		inputs.Params.StartYear = constants.DefaultStartYear
	}
	if inputs.Currency == "" {
		inputs.Currency = constants.DefaultCurrency
	}

	if c.EnableOverpayment && mathutil.IsPositive(c.MonthlyOverpayment) {
		inputs.Policy.Monthly = c.MonthlyOverpayment
	}

	for _, ls := range c.LumpSums {
		inputs.LumpSums = append(inputs.LumpSums, amortize.LumpSum{
			Year:   ls.Year,
			Amount: ls.Amount,
		})
	}
	for _, rp := range c.RatePeriods {
		inputs.RatePeriods = append(inputs.RatePeriods, amortize.RatePeriod{
			StartYear:  rp.StartYear,
			EndYear:    rp.EndYear,
			AnnualRate: rp.Rate,
		})
	}

	return inputs
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal; the resolved inputs always
// produce a schedule.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Principal < 0 {
		warnings = append(warnings, fmt.Sprintf("principal %.2f is not positive - using default %.2f",
			c.Principal, constants.DefaultPrincipal))
	}
	if c.AnnualRate < 0 {
		warnings = append(warnings, fmt.Sprintf("annualRate %.2f is negative - using default %.2f",
			c.AnnualRate, constants.DefaultAnnualRate))
	}
	if c.TermYears < 0 {
		warnings = append(warnings, fmt.Sprintf("termYears %d is not positive - using default %d",
			c.TermYears, constants.DefaultTermYears))
	}
	if mathutil.IsPositive(c.MonthlyOverpayment) && !c.EnableOverpayment {
		warnings = append(warnings, "monthlyOverpayment is set but enableOverpayment is false - overpayment ignored")
	}
	if c.Currency != "" && !currency.Known(c.Currency) {
		warnings = append(warnings, fmt.Sprintf("currency %q has no symbol or fallback rate - amounts shown with the raw code",
			c.Currency))
	}

	resolved := c.Resolve()
	endYear := resolved.Params.StartYear + resolved.Params.TermMonths/constants.MonthsPerYear

	for _, rp := range c.RatePeriods {
		if rp.EndYear < rp.StartYear {
			warnings = append(warnings, fmt.Sprintf("rate period %d-%d is inverted and will never apply",
				rp.StartYear, rp.EndYear))
		}
		if rp.Rate < 0 {
			warnings = append(warnings, fmt.Sprintf("rate period %d-%d has a negative rate", rp.StartYear, rp.EndYear))
		}
	}
	for _, ls := range c.LumpSums {
		if ls.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("lump sum in %d has a non-positive amount", ls.Year))
		}
		if ls.Year < resolved.Params.StartYear || ls.Year >= endYear {
			warnings = append(warnings, fmt.Sprintf("lump sum in %d falls outside the %d-%d term and may never apply",
				ls.Year, resolved.Params.StartYear, endYear))
		}
	}

	return warnings
}
