package dataprocessing

import (
	"context"
	"log/slog"

	"retailprep/pkg/contracts/domain"
)

// FilterResult reports what the filter stage kept and why rows were dropped.
type FilterResult struct {
	Kept         []domain.Transaction
	DroppedDate  int
	DroppedPrice int
}

// Dropped returns the total number of rows removed by the filter.
func (r FilterResult) Dropped() int {
	return r.DroppedDate + r.DroppedPrice
}

// Filter removes rows the pipeline cannot use: rows whose invoice date could
// not be parsed, and rows whose unit price was present but not positive.
// Rows with a missing price cell are kept for the imputer; negative
// quantities are returns and pass through untouched. Dropped rows are not
// reported as errors, only counted.
func Filter(ctx context.Context, logger *slog.Logger, records []domain.Transaction) FilterResult {
	result := FilterResult{Kept: make([]domain.Transaction, 0, len(records))}

	for _, rec := range records {
		if rec.InvoiceDate.IsZero() {
			result.DroppedDate++
			continue
		}
		if !rec.PriceMissing && rec.UnitPrice <= 0 {
			result.DroppedPrice++
			continue
		}
		result.Kept = append(result.Kept, rec)
	}

	logger.InfoContext(ctx, "filter stage complete",
		slog.Int("input_rows", len(records)),
		slog.Int("kept_rows", len(result.Kept)),
		slog.Int("dropped_missing_date", result.DroppedDate),
		slog.Int("dropped_nonpositive_price", result.DroppedPrice))

	return result
}
