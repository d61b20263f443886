package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"retailprep/internal/config"
	apperrors "retailprep/internal/errors"
	"retailprep/internal/infrastructure"
	"retailprep/pkg/contracts/domain"
)

// Processor runs the full cleaning pipeline over a loaded dataset and
// produces the cleaned dataset plus a run report. It is safe to reuse a
// Processor across runs; each run gets its own report and run id.
type Processor struct {
	logger     *slog.Logger
	classifier *Classifier
	imputer    *Imputer
	pricer     *Pricer
	validate   *validator.Validate
}

// NewProcessor wires the pipeline stages from the given policy.
func NewProcessor(logger *slog.Logger, cfg config.PipelineConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		logger:     logger,
		classifier: NewClassifier(cfg.Classifier),
		imputer:    NewImputer(logger),
		pricer:     NewPricer(cfg.Pricing),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Process runs filter, classification, imputation, pricing and validation in
// order. On failure it returns a report with status "failed" alongside the
// error so callers can still persist what the run got through.
func (p *Processor) Process(ctx context.Context, dataset *domain.Dataset, sourceFiles []string) (*domain.Dataset, *domain.RunReport, error) {
	start := time.Now()

	// Reuse a run id already stamped on the context (the CLI stamps one
	// before loading) so the report matches every log line of the run.
	runID := infrastructure.GetRunID(ctx)
	if runID == "" {
		runID = uuid.New().String()
	}

	report := &domain.RunReport{
		RunID:       runID,
		StartedAt:   start,
		SourceFiles: sourceFiles,
		RowsLoaded:  len(dataset.Records),
		Status:      "completed",
	}

	ctx = infrastructure.WithRunID(ctx, report.RunID)
	p.logger.InfoContext(ctx, "pipeline run started",
		slog.Int("rows_loaded", report.RowsLoaded),
		slog.Int("source_files", len(sourceFiles)))

	filtered := Filter(ctx, p.logger, dataset.Records)
	report.RowsDropped = filtered.Dropped()

	p.classifier.Apply(filtered.Kept)

	imputed, err := p.imputer.Apply(ctx, filtered.Kept)
	report.RowsImputed = imputed
	if err != nil {
		return nil, p.fail(ctx, report, start, err), err
	}

	p.pricer.Apply(filtered.Kept)

	if err := p.validateRecords(filtered.Kept); err != nil {
		return nil, p.fail(ctx, report, start, err), err
	}

	report.RowsRetained = len(filtered.Kept)
	report.FinishedAt = time.Now()
	report.ProcessingTime = time.Since(start).Milliseconds()

	p.logger.InfoContext(ctx, "pipeline run completed",
		slog.Int("rows_retained", report.RowsRetained),
		slog.Int("rows_dropped", report.RowsDropped),
		slog.Int("rows_imputed", report.RowsImputed),
		slog.Int64("processing_time_ms", report.ProcessingTime))

	return &domain.Dataset{Records: filtered.Kept}, report, nil
}

// validateRecords enforces the post-pipeline invariants on every record:
// a positive unit price, a non-negative final price, a category, and a
// loyalty segment.
func (p *Processor) validateRecords(records []domain.Transaction) error {
	for i := range records {
		if err := p.validate.Struct(records[i]); err != nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("record %s failed post-pipeline validation", records[i].InvoiceID), err).
				WithContext("row_index", i)
		}
	}
	return nil
}

func (p *Processor) fail(ctx context.Context, report *domain.RunReport, start time.Time, err error) *domain.RunReport {
	report.Status = "failed"
	report.ErrorMessage = err.Error()
	report.FinishedAt = time.Now()
	report.ProcessingTime = time.Since(start).Milliseconds()

	p.logger.ErrorContext(ctx, "pipeline run failed",
		slog.String("error", err.Error()))

	return report
}
