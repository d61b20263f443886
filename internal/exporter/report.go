package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"retailprep/internal/aggregation"
	"retailprep/internal/errors"
	"retailprep/pkg/contracts/domain"
)

// runReportFile is the JSON document written next to the CSV outputs. The
// lift section is optional: a failed run has a report but no lift figure.
type runReportFile struct {
	Run  *domain.RunReport       `json:"run"`
	Lift *aggregation.LiftResult `json:"lift,omitempty"`
}

// WriteRunReport writes the run report, and the lift result when the run
// produced one, as indented JSON.
func (w *CSVWriter) WriteRunReport(ctx context.Context, logger *slog.Logger, report *domain.RunReport, lift *aggregation.LiftResult) error {
	doc := runReportFile{Run: report, Lift: lift}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal run report", err)
	}
	data = append(data, '\n')

	path := w.paths.RunReportJSON
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create reports directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write run report", err)
	}

	logger.InfoContext(ctx, "run report written",
		slog.String("path", path),
		slog.String("run_id", report.RunID),
		slog.String("status", report.Status))
	return nil
}
