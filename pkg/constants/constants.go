// Package constants provides shared constants for the finance-calculator application.
package constants

// Contribution frequencies expressed as periods per year.
const (
	// MonthlyPeriods is the number of monthly periods in a year
	MonthlyPeriods = 12

	// WeeklyPeriods is the number of weekly periods in a year
	WeeklyPeriods = 52

	// QuarterlyPeriods is the number of quarterly periods in a year
	QuarterlyPeriods = 4

	// YearlyPeriods is the number of yearly periods in a year
	YearlyPeriods = 1

	// FortnightlyPeriods approximates "every 15 days" as two periods per month
	FortnightlyPeriods = 24

	// MaxPeriods bounds the number of contribution periods of a SIP: 100
	// years of weekly contributions
	MaxPeriods = 100 * WeeklyPeriods
)

// Financial constants
const (
	// DecimalPrecision is the number of decimal places used for currency rounding
	DecimalPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01

	// RelativeTolerance is the relative tolerance used when comparing large results
	RelativeTolerance = 1e-9

	// CurrencySymbol prefixes every formatted amount
	CurrencySymbol = "₹"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default batch configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultBaseURL is used to build shareable calculator links
	DefaultBaseURL = "https://finance.zytact.com"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheEntries bounds the in-memory evaluation cache
	DefaultCacheEntries = 4096

	// DefaultCacheTTLSeconds is the default lifetime of cached evaluations
	DefaultCacheTTLSeconds = 600

	// DefaultServiceName is reported to the tracing backend
	DefaultServiceName = "finance-calculator"
)
