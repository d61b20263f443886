package aggregation

import (
	"context"
	"log/slog"
	"sort"

	"retailprep/internal/config"
	"retailprep/pkg/contracts/domain"
)

// KPIRow is one country/category cell of the KPI table. Country acts as the
// store proxy; there is no separate store identifier in the source data.
type KPIRow struct {
	Country       string  `json:"country" csv:"Country"`
	Category      string  `json:"category" csv:"Category"`
	UnitsSold     int64   `json:"units_sold" csv:"UnitsSold"`
	UnitsReturned int64   `json:"units_returned" csv:"UnitsReturned"`
	Revenue       float64 `json:"revenue" csv:"Revenue"`
	AvgUnitPrice  float64 `json:"avg_unit_price" csv:"AvgUnitPrice"`
	StockDays     float64 `json:"stock_days" csv:"StockDays"`
}

// StockDaysEstimator computes the stock-days figure for one country/category
// group from its movement totals and the number of distinct trading days.
// The estimate is a formula choice, not fixed logic, so callers can swap it.
type StockDaysEstimator func(unitsSold, unitsReturned int64, activeDays int) float64

// OnHandStockDays returns the default estimator. On-hand stock is
// approximated as factor x units sold and divided by the average net daily
// movement over the group's active days:
//
//	stock_days = (factor * units_sold) / (net_units / active_days)
//
// Non-positive net movement yields zero rather than a negative or infinite
// coverage estimate.
func OnHandStockDays(factor float64) StockDaysEstimator {
	return func(unitsSold, unitsReturned int64, activeDays int) float64 {
		net := unitsSold - unitsReturned
		if net <= 0 || activeDays == 0 {
			return 0
		}
		return factor * float64(unitsSold) * float64(activeDays) / float64(net)
	}
}

// KPIBuilder computes the country/category KPI table.
type KPIBuilder struct {
	logger   *slog.Logger
	estimate StockDaysEstimator
}

// NewKPIBuilder creates a KPI builder using the on-hand estimator with the
// configured factor.
func NewKPIBuilder(logger *slog.Logger, cfg config.StockDaysConfig) *KPIBuilder {
	return NewKPIBuilderWithEstimator(logger, OnHandStockDays(cfg.OnHandFactor))
}

// NewKPIBuilderWithEstimator creates a KPI builder with a caller-supplied
// stock-days estimator.
func NewKPIBuilderWithEstimator(logger *slog.Logger, estimate StockDaysEstimator) *KPIBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &KPIBuilder{logger: logger, estimate: estimate}
}

type kpiAccumulator struct {
	unitsSold     int64
	unitsReturned int64
	revenue       float64
	priceSum      float64
	rows          int64
	activeDays    map[string]struct{}
}

// Build reduces the cleaned records into one row per (country, category)
// pair, sorted by country then category.
func (b *KPIBuilder) Build(ctx context.Context, records []domain.Transaction) []KPIRow {
	type key struct {
		country  string
		category domain.Category
	}

	groups := make(map[key]*kpiAccumulator)
	for _, rec := range records {
		k := key{country: rec.Country, category: rec.Category}
		acc, ok := groups[k]
		if !ok {
			acc = &kpiAccumulator{activeDays: make(map[string]struct{})}
			groups[k] = acc
		}

		if rec.IsReturn() {
			acc.unitsReturned += -rec.Quantity
		} else {
			acc.unitsSold += rec.Quantity
		}
		acc.revenue += rec.Revenue()
		acc.priceSum += rec.UnitPrice
		acc.rows++
		acc.activeDays[rec.InvoiceDate.Format("2006-01-02")] = struct{}{}
	}

	rows := make([]KPIRow, 0, len(groups))
	for k, acc := range groups {
		rows = append(rows, KPIRow{
			Country:       k.country,
			Category:      string(k.category),
			UnitsSold:     acc.unitsSold,
			UnitsReturned: acc.unitsReturned,
			Revenue:       acc.revenue,
			AvgUnitPrice:  acc.priceSum / float64(acc.rows),
			StockDays:     b.estimate(acc.unitsSold, acc.unitsReturned, len(acc.activeDays)),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Category < rows[j].Category
	})

	b.logger.InfoContext(ctx, "kpi table built",
		slog.Int("groups", len(rows)),
		slog.Int("input_rows", len(records)))

	return rows
}
