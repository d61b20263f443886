package exporter

import (
	"context"
	"log/slog"

	"retailprep/internal/aggregation"
	"retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

// Fact table column order is a contract with the downstream visualization
// tool; do not reorder.
var factHeaders = []string{
	"InvoiceID", "InvoiceDate", "Description", "Quantity", "UnitPrice",
	"CustomerID", "Country", "Category", "LoyaltySegment", "PriceImputed",
	"BaseDiscount", "ExtraDiscount", "TotalDiscount", "FinalPrice",
}

// WriteFactTable streams the cleaned transaction set to the fact CSV, one
// row per retained record in pipeline order.
func (w *CSVWriter) WriteFactTable(ctx context.Context, logger *slog.Logger, records []domain.Transaction) error {
	stream, err := w.CreateStreamWriter(w.paths.FactCSV, factHeaders)
	if err != nil {
		return errors.NewStorageError("failed to open fact table for writing", err)
	}

	for _, rec := range records {
		row := []string{
			rec.InvoiceID,
			formatTimestamp(rec.InvoiceDate),
			rec.Description,
			formatQuantity(rec.Quantity),
			formatPrice(rec.UnitPrice),
			rec.CustomerID,
			rec.Country,
			string(rec.Category),
			rec.LoyaltySegment,
			formatBool(rec.PriceImputed),
			formatPercent(rec.BaseDiscount),
			formatPercent(rec.ExtraDiscount),
			formatPercent(rec.TotalDiscount),
			formatPrice(rec.FinalPrice),
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return errors.NewStorageError("failed to write fact row", err).
				WithContext("invoice_id", rec.InvoiceID)
		}
	}

	if err := stream.Close(); err != nil {
		return errors.NewStorageError("failed to finalize fact table", err)
	}

	logger.InfoContext(ctx, "fact table written",
		slog.String("path", w.paths.FactCSV),
		slog.Int("rows", len(records)))
	return nil
}

var kpiHeaders = []string{
	"Country", "Category", "UnitsSold", "UnitsReturned",
	"Revenue", "AvgUnitPrice", "StockDays",
}

// WriteKPITable writes the country/category KPI summary.
func (w *CSVWriter) WriteKPITable(ctx context.Context, logger *slog.Logger, rows []aggregation.KPIRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Country,
			row.Category,
			formatQuantity(row.UnitsSold),
			formatQuantity(row.UnitsReturned),
			formatPrice(row.Revenue),
			formatPrice(row.AvgUnitPrice),
			formatPercent(row.StockDays),
		})
	}

	if err := w.WriteSimpleCSV(w.paths.KPICSV, kpiHeaders, records); err != nil {
		return errors.NewStorageError("failed to write kpi table", err)
	}

	logger.InfoContext(ctx, "kpi table written",
		slog.String("path", w.paths.KPICSV),
		slog.Int("rows", len(rows)))
	return nil
}

// WriteDemandMatrix writes the dense date-by-country grid with one row per
// date and one column per country.
func (w *CSVWriter) WriteDemandMatrix(ctx context.Context, logger *slog.Logger, matrix *aggregation.DemandMatrix) error {
	headers := append([]string{"Date"}, matrix.Countries...)

	records := make([][]string, 0, len(matrix.Dates))
	for _, date := range matrix.Dates {
		row := make([]string, 0, len(headers))
		row = append(row, date)
		for _, country := range matrix.Countries {
			row = append(row, formatQuantity(matrix.At(date, country)))
		}
		records = append(records, row)
	}

	if err := w.WriteSimpleCSV(w.paths.DemandCSV, headers, records); err != nil {
		return errors.NewStorageError("failed to write demand matrix", err)
	}

	logger.InfoContext(ctx, "demand matrix written",
		slog.String("path", w.paths.DemandCSV),
		slog.Int("dates", len(matrix.Dates)),
		slog.Int("countries", len(matrix.Countries)))
	return nil
}
