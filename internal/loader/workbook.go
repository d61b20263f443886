package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing invoice date cells. Workbook
// sheets exported at different times carry different formats.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"01/02/2006 15:04",
	"02/01/2006",
	"2006/01/02",
}

// ParseWorkbook reads a retail transaction workbook and extracts every row
// from every sheet that carries the transaction column contract. Sheets
// without a recognizable header are skipped; a workbook where no sheet
// matches is a parsing error.
func ParseWorkbook(path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	dataset := &domain.Dataset{}
	sheetsParsed := 0

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			slog.Warn("Could not read sheet",
				slog.String("sheet_name", sheetName),
				slog.String("error", err.Error()))
			continue
		}

		records, ok := parseSheet(sheetName, rows)
		if !ok {
			slog.Debug("Sheet does not carry transaction data",
				slog.String("sheet_name", sheetName))
			continue
		}

		slog.Info("Parsed transaction sheet",
			slog.String("sheet_name", sheetName),
			slog.Int("record_count", len(records)))

		dataset.Records = append(dataset.Records, records...)
		sheetsParsed++
	}

	if sheetsParsed == 0 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("no transaction sheet found in %s", path), nil)
	}

	return dataset, nil
}

// parseSheet locates the header row, maps column positions dynamically and
// extracts transaction records. Returns false when the sheet has no header
// matching the transaction column contract.
func parseSheet(sheetName string, rows [][]string) ([]domain.Transaction, bool) {
	headerRow, columnMap := findHeader(rows)
	if headerRow == -1 {
		return nil, false
	}

	var records []domain.Transaction

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]

		if isEmptyRow(row) {
			continue
		}

		// Skip subtotal/footer rows some exports append
		if strings.Contains(strings.ToLower(row[0]), "total") {
			continue
		}

		getString := func(col string) string {
			if idx, exists := columnMap[col]; exists && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		invoiceID := getString("invoice")
		if invoiceID == "" {
			// Merged cells or decoration rows; not a data row
			continue
		}

		qtyCell := getString("quantity")
		quantity, err := strconv.ParseInt(stripThousands(qtyCell), 10, 64)
		if err != nil {
			// A zero quantity here would flow into the demand matrix and
			// KPI sums untraced; skip the row and say so.
			slog.Warn("Unparseable quantity cell, skipping row",
				slog.String("sheet_name", sheetName),
				slog.Int("row_number", i),
				slog.String("cell", qtyCell))
			continue
		}

		record := domain.Transaction{
			InvoiceID:   invoiceID,
			InvoiceDate: parseDate(getString("date")),
			Description: getString("description"),
			Quantity:    quantity,
			CustomerID:  getString("customer"),
			Country:     getString("country"),
		}

		priceCell := getString("price")
		if priceCell == "" {
			record.PriceMissing = true
		} else if price, err := strconv.ParseFloat(stripThousands(priceCell), 64); err == nil {
			record.UnitPrice = price
		} else {
			slog.Warn("Unparseable unit price cell, treating as missing",
				slog.String("sheet_name", sheetName),
				slog.Int("row_number", i),
				slog.String("cell", priceCell))
			record.PriceMissing = true
		}

		records = append(records, record)
	}

	return records, true
}

// findHeader scans the first rows of a sheet for the transaction header and
// maps column positions by header name.
func findHeader(rows [][]string) (int, map[string]int) {
	probe := len(rows)
	if probe > 10 {
		probe = 10
	}

	for i := 0; i < probe; i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		rowText := strings.ToLower(strings.Join(row, " "))
		if !strings.Contains(rowText, "invoice") ||
			!strings.Contains(rowText, "quantity") ||
			!strings.Contains(rowText, "price") {
			continue
		}

		columnMap := make(map[string]int)
		for j, header := range row {
			headerLower := strings.ToLower(strings.TrimSpace(header))

			switch {
			case strings.Contains(headerLower, "invoice") && !strings.Contains(headerLower, "date"):
				columnMap["invoice"] = j
			case strings.Contains(headerLower, "date"):
				columnMap["date"] = j
			case strings.Contains(headerLower, "description") || headerLower == "item":
				columnMap["description"] = j
			case strings.Contains(headerLower, "quantity") || headerLower == "qty":
				columnMap["quantity"] = j
			case strings.Contains(headerLower, "price"):
				columnMap["price"] = j
			case strings.Contains(headerLower, "customer"):
				columnMap["customer"] = j
			case strings.Contains(headerLower, "country"):
				columnMap["country"] = j
			}
		}

		// Description and customer id may legitimately be absent
		required := []string{"invoice", "date", "quantity", "price", "country"}
		complete := true
		for _, col := range required {
			if _, exists := columnMap[col]; !exists {
				complete = false
				break
			}
		}
		if complete {
			return i, columnMap
		}
	}

	return -1, nil
}

// parseDate tries the known invoice date layouts; a cell that matches none
// of them yields the zero time, which the filter stage drops.
func parseDate(cell string) time.Time {
	if cell == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	return time.Time{}
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
