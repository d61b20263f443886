package config

// Application constants for the retail preparation pipeline.
const (
	// Application Info
	AppName = "Retail Prep"

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultInputDir   = "data/input"
	DefaultReportsDir = "data/reports"

	// Input Discovery
	WorkbookPattern = "*.xlsx"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Pricing defaults. Discount values are whole percentages.
	DefaultTaxRate          = 0.18
	DefaultPremiumThreshold = 10.0
	DefaultPremiumRate      = 5.0

	// Stock-days estimate: units-on-hand proxy as a multiple of units sold.
	DefaultOnHandFactor = 0.25
)

// Default category discount percentages, keyed by classifier label.
var DefaultBaseDiscounts = map[string]float64{
	"Household": 5,
	"Grocery":   10,
}

// DefaultHouseholdKeywords drive the first classifier rule. Matching is
// case-insensitive substring; the list mirrors the merchandise vocabulary of
// the source dataset.
var DefaultHouseholdKeywords = []string{
	"SET", "HOLDER", "FRAME", "LANTERN", "CANDLE", "BOX", "SIGN",
	"LIGHT", "DOORMAT", "CUSHION", "TOWEL", "CLOCK",
}
