package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/finhouse/mortgage-planner/pkg/constants"
)

const sampleConfig = `
principal: 250000
annualRate: 3.4
termYears: 30
startYear: 2026
enableOverpayment: true
monthlyOverpayment: 150
lumpSums:
  - year: 2030
    amount: 10000
  - year: 2035
    amount: 5000
ratePeriods:
  - startYear: 2031
    endYear: 2035
    rate: 4.1
currency: USD
logging:
  level: debug
  format: console
output:
  format: csv
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() failed: %v", err)
	}

	if conf.Principal != 250000 || conf.AnnualRate != 3.4 || conf.TermYears != 30 || conf.StartYear != 2026 {
		t.Errorf("loan fields = %+v, unexpected values", conf)
	}
	if !conf.EnableOverpayment || conf.MonthlyOverpayment != 150 {
		t.Errorf("overpayment fields not loaded: %+v", conf)
	}
	if len(conf.LumpSums) != 2 || conf.LumpSums[0].Year != 2030 || conf.LumpSums[0].Amount != 10000 {
		t.Errorf("lump sums not loaded: %+v", conf.LumpSums)
	}
	if len(conf.RatePeriods) != 1 || conf.RatePeriods[0].Rate != 4.1 {
		t.Errorf("rate periods not loaded: %+v", conf.RatePeriods)
	}
	if conf.Currency != "USD" {
		t.Errorf("currency = %s, expected USD", conf.Currency)
	}
	if conf.Logging.Level != "debug" || conf.Output.Format != "csv" {
		t.Errorf("logging/output blocks not loaded: %+v %+v", conf.Logging, conf.Output)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
	// Callers fall back to the built-in defaults on a missing file, so the
	// underlying not-exist error must survive the wrapping.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing-file error does not unwrap to fs.ErrNotExist: %v", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("missing-file error does not unwrap to *fs.PathError: %v", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	var conf Configuration
	inputs := conf.Resolve()

	if inputs.Params.Principal != constants.DefaultPrincipal {
		t.Errorf("Principal = %.2f, expected default %.2f", inputs.Params.Principal, constants.DefaultPrincipal)
	}
	if inputs.Params.AnnualRate != 0 {
		// A zero rate is a legitimate value, not an unset marker.
		t.Errorf("AnnualRate = %.2f, expected 0 to pass through", inputs.Params.AnnualRate)
	}
	if inputs.Params.TermMonths != constants.DefaultTermYears*constants.MonthsPerYear {
		t.Errorf("TermMonths = %d, expected default", inputs.Params.TermMonths)
	}
	if inputs.Params.StartYear != constants.DefaultStartYear {
		t.Errorf("StartYear = %d, expected default %d", inputs.Params.StartYear, constants.DefaultStartYear)
	}
	if inputs.Currency != constants.DefaultCurrency {
		t.Errorf("Currency = %s, expected %s", inputs.Currency, constants.DefaultCurrency)
	}
	if inputs.Policy.Monthly != 0 {
		t.Errorf("Policy.Monthly = %.2f, expected 0", inputs.Policy.Monthly)
	}
}

func TestResolveOverpaymentGate(t *testing.T) {
	tests := []struct {
		name     string
		enable   bool
		monthly  float64
		expected float64
	}{
		{"Enabled with amount", true, 200, 200},
		{"Disabled with amount", false, 200, 0},
		{"Enabled without amount", true, 0, 0},
		{"Enabled with negative amount", true, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Configuration{EnableOverpayment: tt.enable, MonthlyOverpayment: tt.monthly}
			inputs := conf.Resolve()
			if inputs.Policy.Monthly != tt.expected {
				t.Errorf("Policy.Monthly = %.2f, expected %.2f", inputs.Policy.Monthly, tt.expected)
			}
		})
	}
}

func TestResolveConvertsStructures(t *testing.T) {
	conf := Configuration{
		Principal: 100000,
		TermYears: 10,
		StartYear: 2025,
		LumpSums:  []LumpSumConfig{{Year: 2027, Amount: 5000}},
		RatePeriods: []RatePeriodConfig{
			{StartYear: 2028, EndYear: 2030, Rate: 4.5},
		},
	}

	inputs := conf.Resolve()

	if len(inputs.LumpSums) != 1 || inputs.LumpSums[0].Year != 2027 || inputs.LumpSums[0].Amount != 5000 {
		t.Errorf("lump sums not converted: %+v", inputs.LumpSums)
	}
	if len(inputs.RatePeriods) != 1 || inputs.RatePeriods[0].AnnualRate != 4.5 {
		t.Errorf("rate periods not converted: %+v", inputs.RatePeriods)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := Configuration{
		Principal:          -5,
		TermYears:          10,
		StartYear:          2025,
		MonthlyOverpayment: 100, // without enableOverpayment
		Currency:           "ZZZ",
		RatePeriods: []RatePeriodConfig{
			{StartYear: 2030, EndYear: 2026, Rate: 4.0}, // inverted
		},
		LumpSums: []LumpSumConfig{
			{Year: 2050, Amount: 1000}, // beyond the term
			{Year: 2026, Amount: 0},    // non-positive
		},
	}

	warnings := conf.ValidateConfiguration()

	expectFragments := []string{
		"not positive",
		"overpayment ignored",
		"no symbol",
		"inverted",
		"outside",
		"non-positive amount",
	}
	for _, fragment := range expectFragments {
		found := false
		for _, warning := range warnings {
			if strings.Contains(warning, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no warning containing %q in %v", fragment, warnings)
		}
	}
}

func TestValidateConfigurationClean(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() failed: %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings for a clean config: %v", warnings)
	}
}
