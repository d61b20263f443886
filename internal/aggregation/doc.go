// Package aggregation reduces the cleaned transaction set into the summary
// views the exporter writes: a country/category KPI table, a dense
// date-by-country demand matrix, and the discount revenue lift figure.
//
// Every reduction is a pure read of its input; aggregation never mutates
// transaction records. Output rows are sorted so repeated runs over the
// same input produce identical files.
package aggregation
