package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailprep/internal/aggregation"
	"retailprep/pkg/contracts/domain"
)

func sampleRecords() []domain.Transaction {
	date := time.Date(2011, 6, 1, 9, 26, 0, 0, time.UTC)
	return []domain.Transaction{
		{
			InvoiceID: "536365", InvoiceDate: date,
			Description: "GLASS CANDLE HOLDER", Quantity: 2, UnitPrice: 12,
			CustomerID: "17850", Country: "United Kingdom",
			Category: domain.CategoryHousehold, LoyaltySegment: domain.SegmentLoyal,
			BaseDiscount: 5, ExtraDiscount: 5, TotalDiscount: 10, FinalPrice: 12.744,
		},
		{
			InvoiceID: "536366", InvoiceDate: date,
			Description: "ORGANIC HONEY", Quantity: 5, UnitPrice: 2.5,
			Country:  "France",
			Category: domain.CategoryGrocery, LoyaltySegment: domain.SegmentNonLoyal,
			PriceImputed: true,
			BaseDiscount: 10, TotalDiscount: 10, FinalPrice: 2.655,
		},
	}
}

func TestWriteFactTable(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteFactTable(context.Background(), slog.Default(), sampleRecords())
	require.NoError(t, err)

	data, err := os.ReadFile(paths.FactCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data[3:]), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Join(factHeaders, ","), lines[0])
	assert.Equal(t, "536365,2011-06-01 09:26,GLASS CANDLE HOLDER,2,12.000,17850,United Kingdom,Household,loyal,false,5.00,5.00,10.00,12.744", lines[1])
	assert.Equal(t, "536366,2011-06-01 09:26,ORGANIC HONEY,5,2.500,,France,Grocery,non-loyal,true,10.00,0.00,10.00,2.655", lines[2])
}

func TestWriteFactTable_Idempotent(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)
	records := sampleRecords()

	require.NoError(t, w.WriteFactTable(context.Background(), slog.Default(), records))
	first, err := os.ReadFile(paths.FactCSV)
	require.NoError(t, err)

	require.NoError(t, w.WriteFactTable(context.Background(), slog.Default(), records))
	second, err := os.ReadFile(paths.FactCSV)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteKPITable(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	rows := []aggregation.KPIRow{
		{Country: "France", Category: "Grocery", UnitsSold: 10, UnitsReturned: 2, Revenue: 21.24, AvgUnitPrice: 2.0, StockDays: 0.5},
	}

	err := w.WriteKPITable(context.Background(), slog.Default(), rows)
	require.NoError(t, err)

	data, err := os.ReadFile(paths.KPICSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data[3:]), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Country,Category,UnitsSold,UnitsReturned,Revenue,AvgUnitPrice,StockDays", lines[0])
	assert.Equal(t, "France,Grocery,10,2,21.240,2.000,0.50", lines[1])
}

func TestWriteDemandMatrix(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	records := []domain.Transaction{
		{Country: "France", Quantity: 15, InvoiceDate: time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Country: "Germany", Quantity: 3, InvoiceDate: time.Date(2011, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	matrix := aggregation.BuildDemandMatrix(context.Background(), nil, records)

	err := w.WriteDemandMatrix(context.Background(), slog.Default(), matrix)
	require.NoError(t, err)

	data, err := os.ReadFile(paths.DemandCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data[3:]), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,France,Germany", lines[0])
	assert.Equal(t, "2011-06-01,15,0", lines[1])
	assert.Equal(t, "2011-06-02,0,3", lines[2])
}

func TestWriteRunReport(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	report := &domain.RunReport{
		RunID:        "0c6a1a6e-62f5-4f8e-9d6c-0f2b4f5a7c3d",
		RowsLoaded:   5,
		RowsRetained: 3,
		Status:       "completed",
	}
	lift := &aggregation.LiftResult{ControlRevenue: 1000, TreatedRevenue: 837.7, LiftPercent: -16.23}

	err := w.WriteRunReport(context.Background(), slog.Default(), report, lift)
	require.NoError(t, err)

	data, err := os.ReadFile(paths.RunReportJSON)
	require.NoError(t, err)

	var doc struct {
		Run  domain.RunReport        `json:"run"`
		Lift *aggregation.LiftResult `json:"lift"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, report.RunID, doc.Run.RunID)
	require.NotNil(t, doc.Lift)
	assert.Equal(t, -16.23, doc.Lift.LiftPercent)
}

func TestWriteRunReport_NoLift(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	report := &domain.RunReport{RunID: "0c6a1a6e-62f5-4f8e-9d6c-0f2b4f5a7c3d", Status: "failed", ErrorMessage: "boom"}
	require.NoError(t, w.WriteRunReport(context.Background(), slog.Default(), report, nil))

	data, err := os.ReadFile(paths.RunReportJSON)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"lift"`)
}
