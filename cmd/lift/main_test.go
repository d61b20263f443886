package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retailprep/internal/errors"
)

func writeFact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions_clean.csv")
	bom := []byte{0xEF, 0xBB, 0xBF}
	require.NoError(t, os.WriteFile(path, append(bom, []byte(content)...), 0644))
	return path
}

func TestLiftFromFactTable(t *testing.T) {
	// Control 10*2 + 5*4 = 40; treated 10*1.8 + 5*3.6 = 36.
	path := writeFact(t, "InvoiceID,Quantity,UnitPrice,FinalPrice\n"+
		"1,10,2.000,1.800\n"+
		"2,5,4.000,3.600\n")

	result, err := liftFromFactTable(path)
	require.NoError(t, err)
	assert.InDelta(t, 40, result.ControlRevenue, 1e-9)
	assert.InDelta(t, 36, result.TreatedRevenue, 1e-9)
	assert.Equal(t, -10.0, result.LiftPercent)
}

func TestLiftFromFactTable_MissingColumn(t *testing.T) {
	path := writeFact(t, "InvoiceID,Quantity,UnitPrice\n1,10,2.000\n")
	_, err := liftFromFactTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FinalPrice")
}

func TestLiftFromFactTable_NoRows(t *testing.T) {
	path := writeFact(t, "InvoiceID,Quantity,UnitPrice,FinalPrice\n")
	_, err := liftFromFactTable(path)
	assert.Error(t, err)
}

func TestLiftFromFactTable_ZeroControl(t *testing.T) {
	path := writeFact(t, "InvoiceID,Quantity,UnitPrice,FinalPrice\n1,0,2.000,1.800\n")
	_, err := liftFromFactTable(path)
	assert.ErrorIs(t, err, apperrors.ErrUndefinedLift)
}

func TestLiftFromFactTable_MissingFile(t *testing.T) {
	_, err := liftFromFactTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
