package exporter

import (
	"strconv"
	"time"
)

// Fixed-width numeric formatting keeps output files byte-stable across runs
// and avoids scientific notation in Excel.

// formatPrice formats a monetary value with three decimal places.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// formatPercent formats a percentage value with two decimal places.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatQuantity formats an integer quantity.
func formatQuantity(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatBool formats a flag column as "true"/"false".
func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

// formatTimestamp formats an invoice timestamp with minute precision, the
// granularity the source workbooks carry.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
