package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

// Imputer fills missing unit prices with the median observed price of the
// record's category. It runs after classification, so every record already
// carries a category, and before pricing, which requires a positive price.
type Imputer struct {
	logger *slog.Logger
}

// NewImputer creates an imputer writing stage diagnostics to logger.
func NewImputer(logger *slog.Logger) *Imputer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Imputer{logger: logger}
}

// Apply replaces every missing unit price in place and returns the number of
// rows imputed. A record whose category has no observed prices is an error:
// inventing a price with no reference group would silently fabricate revenue,
// so the run fails loudly instead.
func (im *Imputer) Apply(ctx context.Context, records []domain.Transaction) (int, error) {
	medians := im.groupMedians(records)

	imputed := 0
	for i := range records {
		if !records[i].PriceMissing {
			continue
		}
		median, ok := medians[records[i].Category]
		if !ok {
			return imputed, errors.NewImputationError(
				"no observed prices for category", errors.ErrNoReferenceValues).
				WithContext("category", string(records[i].Category)).
				WithContext("invoice_id", records[i].InvoiceID)
		}
		records[i].UnitPrice = median
		records[i].PriceMissing = false
		records[i].PriceImputed = true
		imputed++
	}

	im.logger.InfoContext(ctx, "imputation stage complete",
		slog.Int("rows_imputed", imputed),
		slog.Int("reference_groups", len(medians)))

	return imputed, nil
}

// groupMedians computes the median observed (non-missing) unit price per
// category. Categories with no observed prices are simply absent from the
// map; the caller decides whether that matters.
func (im *Imputer) groupMedians(records []domain.Transaction) map[domain.Category]float64 {
	groups := make(map[domain.Category][]float64)
	for _, rec := range records {
		if rec.PriceMissing {
			continue
		}
		groups[rec.Category] = append(groups[rec.Category], rec.UnitPrice)
	}

	medians := make(map[domain.Category]float64, len(groups))
	for category, prices := range groups {
		medians[category] = median(prices)
	}
	return medians
}

// median returns the middle value of prices, averaging the two central
// values for even-length input. The slice is sorted in place.
func median(prices []float64) float64 {
	sort.Float64s(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}
