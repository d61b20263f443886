package config

import (
	"fmt"
	"maps"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration.
// Defaults come from Default(), not struct tags: envconfig default tags
// would re-apply themselves over file-provided values during the final env
// pass, silently discarding the file.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR"`
	InputDir      string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// PipelineConfig carries every policy parameter the cleaning pipeline uses.
// It is passed into the pipeline explicitly so repeated runs with different
// policies never share state through the package.
type PipelineConfig struct {
	Classifier ClassifierConfig `yaml:"classifier" envconfig:"CLASSIFIER"`
	Pricing    PricingConfig    `yaml:"pricing" envconfig:"PRICING"`
	StockDays  StockDaysConfig  `yaml:"stock_days" envconfig:"STOCK_DAYS"`
}

// ClassifierConfig holds the ordered rule list for category classification.
// Rules are evaluated in order, first match wins; Fallback is assigned when
// no rule matches, so classification is total.
type ClassifierConfig struct {
	Rules    []CategoryRule `yaml:"rules"`
	Fallback string         `yaml:"fallback" envconfig:"FALLBACK"`
}

// CategoryRule maps a keyword set to a category label.
// Matching is case-insensitive substring on the product description.
type CategoryRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// PricingConfig holds the discount and tax policy.
// Discount values are whole percentages (5 means 5%).
type PricingConfig struct {
	BaseDiscounts    map[string]float64 `yaml:"base_discounts"`
	PremiumThreshold float64            `yaml:"premium_threshold" envconfig:"PREMIUM_THRESHOLD"`
	PremiumRate      float64            `yaml:"premium_rate" envconfig:"PREMIUM_RATE"`
	TaxRate          float64            `yaml:"tax_rate" envconfig:"TAX_RATE"`
	// ClampTotal caps the stacked discount at 100%. The source workflow did
	// not clamp, so the default leaves stacking unbounded.
	ClampTotal bool `yaml:"clamp_total" envconfig:"CLAMP_TOTAL"`
}

// StockDaysConfig parameterizes the stock-days estimate in the KPI table.
type StockDaysConfig struct {
	OnHandFactor float64 `yaml:"on_hand_factor" envconfig:"ON_HAND_FACTOR"`
}

// Load loads configuration from environment variables and, when one exists
// in a well-known location, a config file.
func Load() (*Config, error) {
	return load(getConfigFilePath())
}

// LoadFrom loads configuration from an explicit config file merged with
// environment variables. Unlike Load, a missing file is an error.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

// load builds the configuration in precedence order: defaults first, then
// the YAML file unmarshalled over them (only keys present in the file are
// touched), then environment variables over everything. The Config structs
// carry no envconfig default tags, so envconfig.Process only assigns fields
// whose RETAIL_* variable is actually set and leaves file values alone.
func load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables take precedence over the file
	if err := envconfig.Process("RETAIL", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyPipelineDefaults()

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile unmarshals a YAML file over cfg, leaving every field the
// file does not mention untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyPipelineDefaults fills in the policy tables envconfig cannot default.
func (c *Config) applyPipelineDefaults() {
	if len(c.Pipeline.Classifier.Rules) == 0 {
		c.Pipeline.Classifier.Rules = []CategoryRule{
			{Label: "Household", Keywords: DefaultHouseholdKeywords},
		}
	}
	if c.Pipeline.Classifier.Fallback == "" {
		c.Pipeline.Classifier.Fallback = "Grocery"
	}
	if len(c.Pipeline.Pricing.BaseDiscounts) == 0 {
		c.Pipeline.Pricing.BaseDiscounts = maps.Clone(DefaultBaseDiscounts)
	}
	if c.Pipeline.StockDays.OnHandFactor == 0 {
		c.Pipeline.StockDays.OnHandFactor = DefaultOnHandFactor
	}
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Pipeline.Pricing.TaxRate < 0 {
		return fmt.Errorf("tax rate must not be negative: %f", c.Pipeline.Pricing.TaxRate)
	}

	if c.Pipeline.Pricing.PremiumRate < 0 {
		return fmt.Errorf("premium rate must not be negative: %f", c.Pipeline.Pricing.PremiumRate)
	}

	for label, pct := range c.Pipeline.Pricing.BaseDiscounts {
		if pct < 0 {
			return fmt.Errorf("base discount for %s must not be negative: %f", label, pct)
		}
	}

	if c.Pipeline.Classifier.Fallback == "" {
		return fmt.Errorf("classifier fallback category must be set")
	}

	for i, rule := range c.Pipeline.Classifier.Rules {
		if rule.Label == "" {
			return fmt.Errorf("classifier rule %d has no label", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("classifier rule %q has no keywords", rule.Label)
		}
	}

	if c.Logging.Format != "json" {
		// Always JSON for machine-readable run logs
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "console" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			InputDir:   DefaultInputDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Pipeline: PipelineConfig{
			Classifier: ClassifierConfig{
				Rules: []CategoryRule{
					{Label: "Household", Keywords: DefaultHouseholdKeywords},
				},
				Fallback: "Grocery",
			},
			Pricing: PricingConfig{
				BaseDiscounts:    maps.Clone(DefaultBaseDiscounts),
				PremiumThreshold: DefaultPremiumThreshold,
				PremiumRate:      DefaultPremiumRate,
				TaxRate:          DefaultTaxRate,
				ClampTotal:       false,
			},
			StockDays: StockDaysConfig{
				OnHandFactor: DefaultOnHandFactor,
			},
		},
	}
}
