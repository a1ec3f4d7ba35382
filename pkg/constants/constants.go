// Package constants provides shared constants for the loan-amortization application.
package constants

import "time"

// DateLayout is the ISO-8601 calendar date format accepted for start dates
// and emitted for payment dates.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CentPlaces is the number of decimal places kept for currency amounts
	CentPlaces = 2

	// PeriodStrideDays is the fixed number of days between two scheduled payments
	PeriodStrideDays = 30

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// LongTermWarningYears is the term above which configuration validation warns
	LongTermWarningYears = 50
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
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

	// DefaultMaxRequestSizeBytes is the default maximum size of a calculation request (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultRequestsPerMinute is the sustained calculation rate allowed per client
	DefaultRequestsPerMinute = 60

	// DefaultRequestBurst is the number of calculations a client may issue at once
	DefaultRequestBurst = 10

	// MaxLoanTermYears is the longest loan term that can be amortized
	MaxLoanTermYears = 100
)

// Currency lookup defaults
const (
	// DefaultCurrencySymbol is displayed whenever the client currency cannot be resolved
	DefaultCurrencySymbol = "$"

	// DefaultCurrencyEndpoint is the base URL of the IP geolocation service
	DefaultCurrencyEndpoint = "https://ipapi.co"

	// DefaultCurrencyTimeout bounds a single geolocation request
	DefaultCurrencyTimeout = 2 * time.Second

	// DefaultCurrencyCacheSize is the number of client IPs whose symbol is remembered
	DefaultCurrencyCacheSize = 1024

	// DefaultCurrencyCacheTTL is how long a resolved symbol is remembered
	DefaultCurrencyCacheTTL = 6 * time.Hour
)
