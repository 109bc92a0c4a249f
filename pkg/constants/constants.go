// Package constants provides shared constants for the asset-depreciation application.
package constants

// DateLayout is the format expected for purchase dates in config files and
// API payloads.
const DateLayout = "2006-01-02"

// MonthLayout is accepted as a shorthand purchase date; the day defaults to
// the first of the month.
const MonthLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DecliningBalanceFactor is the multiplier applied by the double-declining method
	DecliningBalanceFactor = 2.0

	// DefaultUsefulLife is the useful life in years given to new draft assets
	DefaultUsefulLife = 5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"

	// OutputFormatPDF is the PDF document output format
	OutputFormatPDF = "pdf"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{
	OutputFormatPretty,
	OutputFormatCSV,
	OutputFormatJSON,
	OutputFormatXLSX,
	OutputFormatPDF,
}

// Locale defaults
const (
	// DefaultLocale is the BCP 47 tag used when none is configured
	DefaultLocale = "en-US"

	// DefaultCurrency is the ISO 4217 code used when none is configured
	DefaultCurrency = "USD"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is the dotenv file loaded before reading the environment
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment overrides, e.g. ASSETDEP_OUTPUT_FORMAT
	EnvPrefix = "ASSETDEP"
)

// Storage constants
const (
	// StorageDriverMemory keeps records in process memory
	StorageDriverMemory = "memory"

	// StorageDriverSQLite keeps records in a SQLite database file
	StorageDriverSQLite = "sqlite"

	// DefaultSQLitePath is used when the sqlite driver has no path configured
	DefaultSQLitePath = "asset-depreciation.db"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown
	DefaultShutdownTimeoutSeconds = 10
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// FloatTolerance is the tolerance for floating point drift in schedules
	FloatTolerance = 1e-9
)
