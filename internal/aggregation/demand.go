package aggregation

import (
	"context"
	"log/slog"
	"sort"

	"retailprep/pkg/contracts/domain"
)

// DemandMatrix is a dense date-by-country grid of net quantity. Every
// (date, country) combination observed anywhere in the input has a cell,
// zero-filled when that country had no transactions on that date. Dates use
// day granularity in "2006-01-02" form.
type DemandMatrix struct {
	Dates     []string // sorted ascending
	Countries []string // sorted ascending
	Cells     map[string]map[string]int64
}

// At returns the net quantity for a (date, country) cell. Cells outside the
// grid are zero, matching the dense-fill contract.
func (m *DemandMatrix) At(date, country string) int64 {
	row, ok := m.Cells[date]
	if !ok {
		return 0
	}
	return row[country]
}

// BuildDemandMatrix pivots the cleaned records into the demand grid. The
// grid spans the cross product of every observed date and every observed
// country, so downstream consumers never need to distinguish "absent" from
// "zero demand".
func BuildDemandMatrix(ctx context.Context, logger *slog.Logger, records []domain.Transaction) *DemandMatrix {
	if logger == nil {
		logger = slog.Default()
	}

	dateSet := make(map[string]struct{})
	countrySet := make(map[string]struct{})
	sums := make(map[string]map[string]int64)

	for _, rec := range records {
		date := rec.InvoiceDate.Format("2006-01-02")
		dateSet[date] = struct{}{}
		countrySet[rec.Country] = struct{}{}

		if sums[date] == nil {
			sums[date] = make(map[string]int64)
		}
		sums[date][rec.Country] += rec.Quantity
	}

	matrix := &DemandMatrix{
		Dates:     sortedKeys(dateSet),
		Countries: sortedKeys(countrySet),
		Cells:     make(map[string]map[string]int64, len(dateSet)),
	}

	for _, date := range matrix.Dates {
		row := make(map[string]int64, len(matrix.Countries))
		for _, country := range matrix.Countries {
			row[country] = sums[date][country]
		}
		matrix.Cells[date] = row
	}

	logger.InfoContext(ctx, "demand matrix built",
		slog.Int("dates", len(matrix.Dates)),
		slog.Int("countries", len(matrix.Countries)))

	return matrix
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
