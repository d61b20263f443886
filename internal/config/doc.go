// Package config provides centralized configuration management for the
// retail preparation pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern RETAIL_* for namespacing:
//
//	RETAIL_LOGGING_LEVEL=debug
//	RETAIL_PIPELINE_PRICING_TAX_RATE=0.18
//	RETAIL_PIPELINE_PRICING_CLAMP_TOTAL=true
//
// # Pipeline Policy
//
// Every policy parameter the pipeline uses (discount map, premium threshold,
// tax rate, classifier rule list, stock-days factor) lives in PipelineConfig
// and is passed into the pipeline explicitly. There is no module-level
// mutable policy state, so repeated runs with different parameters cannot
// interfere with one another.
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	inputPath := paths.GetInputPath("transactions.xlsx")
//	reportPath := paths.GetReportPath("store_category_kpis.csv")
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
