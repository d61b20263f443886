package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailprep/internal/config"
	"retailprep/internal/loader"
)

func TestOutputsCurrent(t *testing.T) {
	dir := t.TempDir()
	paths := &config.Paths{
		FactCSV:       filepath.Join(dir, "transactions_clean.csv"),
		KPICSV:        filepath.Join(dir, "store_category_kpis.csv"),
		DemandCSV:     filepath.Join(dir, "demand_matrix.csv"),
		RunReportJSON: filepath.Join(dir, "run_report.json"),
	}

	inputTime := time.Now().Add(-time.Hour)
	files := []loader.FileInfo{{Name: "june.xlsx", ModTime: inputTime}}

	// No outputs yet.
	assert.False(t, outputsCurrent(paths, files))

	for _, out := range []string{paths.FactCSV, paths.KPICSV, paths.DemandCSV, paths.RunReportJSON} {
		require.NoError(t, os.WriteFile(out, []byte("x"), 0644))
	}
	assert.True(t, outputsCurrent(paths, files))

	// An input newer than the outputs forces a rerun.
	files[0].ModTime = time.Now().Add(time.Hour)
	assert.False(t, outputsCurrent(paths, files))
}
