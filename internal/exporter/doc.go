// Package exporter serializes pipeline outputs to flat files: the cleaned
// transaction fact table, the country/category KPI summary, the demand
// matrix, and the JSON run report.
//
// CSV files carry a UTF-8 BOM so Excel opens them correctly. Numeric
// formatting is fixed-width (%.3f for prices, %.2f for percentages) and row
// order is deterministic, so rerunning the pipeline over unchanged input
// reproduces the output files byte for byte.
package exporter
