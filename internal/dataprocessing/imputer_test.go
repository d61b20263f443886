package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

func TestImputer_Apply(t *testing.T) {
	records := []domain.Transaction{
		{InvoiceID: "1", Category: domain.CategoryGrocery, UnitPrice: 1.0},
		{InvoiceID: "2", Category: domain.CategoryGrocery, UnitPrice: 3.0},
		{InvoiceID: "3", Category: domain.CategoryGrocery, UnitPrice: 10.0},
		{InvoiceID: "4", Category: domain.CategoryGrocery, PriceMissing: true},
		{InvoiceID: "5", Category: domain.CategoryHousehold, UnitPrice: 4.0},
		{InvoiceID: "6", Category: domain.CategoryHousehold, UnitPrice: 6.0},
		{InvoiceID: "7", Category: domain.CategoryHousehold, PriceMissing: true},
	}

	imputed, err := NewImputer(nil).Apply(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, imputed)

	// Odd-sized group takes the middle value.
	assert.Equal(t, 3.0, records[3].UnitPrice)
	assert.True(t, records[3].PriceImputed)
	assert.False(t, records[3].PriceMissing)

	// Even-sized group averages the two central values.
	assert.Equal(t, 5.0, records[6].UnitPrice)
	assert.True(t, records[6].PriceImputed)

	// Observed rows are untouched.
	assert.Equal(t, 1.0, records[0].UnitPrice)
	assert.False(t, records[0].PriceImputed)
}

func TestImputer_NoMissingPrices(t *testing.T) {
	records := []domain.Transaction{
		{InvoiceID: "1", Category: domain.CategoryGrocery, UnitPrice: 2.5},
	}

	imputed, err := NewImputer(nil).Apply(context.Background(), records)
	require.NoError(t, err)
	assert.Zero(t, imputed)
}

func TestImputer_EmptyReferenceGroup(t *testing.T) {
	// Every Household price is missing, so the group has no reference values.
	records := []domain.Transaction{
		{InvoiceID: "1", Category: domain.CategoryGrocery, UnitPrice: 2.5},
		{InvoiceID: "2", Category: domain.CategoryHousehold, PriceMissing: true},
	}

	_, err := NewImputer(nil).Apply(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoReferenceValues)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeImputation, appErr.Type)
	assert.Equal(t, "Household", appErr.Context["category"])
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"single value", []float64{4.2}, 4.2},
		{"odd count", []float64{9, 1, 5}, 5},
		{"even count", []float64{4, 1, 3, 2}, 2.5},
		{"duplicates", []float64{2, 2, 2, 8}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, median(tt.prices))
		})
	}
}
