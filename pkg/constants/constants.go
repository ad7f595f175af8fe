// Package constants provides shared constants for the save-smarter application.
package constants

import "time"

// DateLayout is the calendar date format expected in config files, API
// payloads and output.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year, also the compounding
	// frequency used for passive projections.
	MonthsPerYear = 12

	// CurrencyDecimalPlaces is the precision for currency rounding
	CurrencyDecimalPlaces int32 = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencySymbol prefixes every formatted amount.
	CurrencySymbol = "R"
)

// Deposit schedule table: periods per year and the number of days stepped
// between deposits.
const (
	DailyPeriodsPerYear   = 365
	DailyStepDays         = 1
	WeeklyPeriodsPerYear  = 52
	WeeklyStepDays        = 7
	MonthlyPeriodsPerYear = 12
	MonthlyStepDays       = 30
)

// Date window constants for collecting goal input.
const (
	// MinTargetLeadDays is how many days after today the target date must be.
	MinTargetLeadDays = 2

	// MinStartLeadDays is how many days after today the first deposit may be.
	MinStartLeadDays = 1

	// MaxHorizonYears is the horizon beyond which target dates raise a warning.
	MaxHorizonYears = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variables that override config keys.
	EnvPrefix = "SAVESMARTER"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds how long in-flight requests may run after a
	// shutdown signal.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultRequestTimeout bounds the handling of a single API request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout limits how long a client may take to send headers.
	DefaultReadHeaderTimeout = 5 * time.Second
)
