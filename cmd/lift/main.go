package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"retailprep/internal/aggregation"
	"retailprep/internal/config"
)

// lift recomputes the discount revenue lift from an exported fact table, so
// the headline figure can be checked without rerunning the whole pipeline.
func main() {
	factPath := flag.String("fact", "", "path to the cleaned fact CSV (defaults to data/reports/transactions_clean.csv relative to executable)")
	flag.Parse()

	if *factPath == "" {
		paths, err := config.GetPaths()
		if err != nil {
			slog.Error("Failed to initialize paths", "error", err)
			os.Exit(1)
		}
		*factPath = paths.FactCSV
	}

	result, err := liftFromFactTable(*factPath)
	if err != nil {
		slog.Error("Failed to compute lift", "error", err, "fact", *factPath)
		os.Exit(1)
	}

	fmt.Printf("control revenue: %.3f\n", result.ControlRevenue)
	fmt.Printf("treated revenue: %.3f\n", result.TreatedRevenue)
	fmt.Printf("lift: %.2f%%\n", result.LiftPercent)
}

// liftFromFactTable reads quantity, unit price and final price back out of
// the fact CSV and recomputes the control/treated revenue totals.
func liftFromFactTable(path string) (*aggregation.LiftResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fact table: %w", err)
	}
	// Strip the UTF-8 BOM the exporter writes for Excel.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse fact table: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("fact table %s has no data rows", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, required := range []string{"Quantity", "UnitPrice", "FinalPrice"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("fact table %s is missing column %s", path, required)
		}
	}

	var control, treated float64
	for i, row := range rows[1:] {
		quantity, err := strconv.ParseFloat(row[cols["Quantity"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad quantity %q: %w", i+1, row[cols["Quantity"]], err)
		}
		unitPrice, err := strconv.ParseFloat(row[cols["UnitPrice"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad unit price %q: %w", i+1, row[cols["UnitPrice"]], err)
		}
		finalPrice, err := strconv.ParseFloat(row[cols["FinalPrice"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad final price %q: %w", i+1, row[cols["FinalPrice"]], err)
		}

		control += unitPrice * quantity
		treated += finalPrice * quantity
	}

	lift, err := aggregation.Lift(control, treated)
	if err != nil {
		return nil, err
	}

	return &aggregation.LiftResult{
		ControlRevenue: control,
		TreatedRevenue: treated,
		LiftPercent:    lift,
	}, nil
}
