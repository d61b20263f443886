package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"retailprep/internal/aggregation"
	"retailprep/internal/config"
	"retailprep/internal/dataprocessing"
	"retailprep/internal/exporter"
	"retailprep/internal/infrastructure"
	"retailprep/internal/loader"
	"retailprep/internal/validation"
	"retailprep/pkg/contracts"
)

func main() {
	inDir := flag.String("in", "", "input directory for .xlsx workbooks (defaults to data/input relative to executable)")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to data/reports relative to executable)")
	configFile := flag.String("config", "", "path to a YAML config file (defaults to probing config.yaml next to the executable)")
	full := flag.Bool("full", false, "rerun the pipeline even when outputs are newer than every input workbook")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *inDir == "" {
		*inDir = paths.InputDir
	}
	if *outDir != "" {
		paths.SetReportsDir(*outDir)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
		if err != nil {
			slog.Error("Failed to load config file", "error", err, "config", *configFile)
			os.Exit(1)
		}
	} else if cfg, err = config.Load(); err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("prepare.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting "+config.AppName,
		slog.String("version", contracts.Version),
		slog.String("input_dir", *inDir),
		slog.String("reports_dir", paths.ReportsDir),
		slog.String("executable_dir", paths.ExecutableDir))

	if err := run(context.Background(), logger, cfg, paths, *inDir, *full); err != nil {
		logger.Error("Preparation run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Preparation run finished")
}

// run executes the full pipeline: discover workbooks, load, clean, aggregate
// and export. The run report is written even when a stage fails so the
// failure is visible next to the partial outputs.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, paths *config.Paths, inDir string, full bool) error {
	validator := validation.NewWorkbookValidator(logger)
	if err := validator.ValidateInputDirectory(ctx, inDir, config.WorkbookPattern); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(ctx, paths.ReportsDir); err != nil {
		return err
	}

	discovery := loader.NewDiscovery(paths.ExecutableDir)
	files, err := discovery.FindWorkbooks(inDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No workbooks found in input directory", slog.String("input_dir", inDir))
		return nil
	}

	if !full && outputsCurrent(paths, files) {
		logger.Info("Outputs are newer than every input workbook, skipping run (use -full to force)")
		return nil
	}

	sourceNames := make([]string, 0, len(files))
	for _, file := range files {
		if err := validator.ValidateFile(ctx, file.Path); err != nil {
			return err
		}
		sourceNames = append(sourceNames, file.Name)
	}

	// Stamp the run id before loading so load-phase log lines carry it too.
	ctx = infrastructure.WithRunID(ctx, uuid.New().String())

	dataset, err := loader.LoadAll(ctx, files)
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(paths)
	processor := dataprocessing.NewProcessor(logger, cfg.Pipeline)

	cleaned, report, err := processor.Process(ctx, dataset, sourceNames)
	if err != nil {
		// Persist the failed report before surfacing the error.
		if writeErr := writer.WriteRunReport(ctx, logger, report, nil); writeErr != nil {
			logger.Error("Failed to write run report for failed run",
				slog.String("error", writeErr.Error()))
		}
		return err
	}

	kpiRows := aggregation.NewKPIBuilder(logger, cfg.Pipeline.StockDays).Build(ctx, cleaned.Records)
	matrix := aggregation.BuildDemandMatrix(ctx, logger, cleaned.Records)

	lift, err := aggregation.RevenueLift(cleaned.Records)
	if err != nil {
		return err
	}
	logger.Info("Discount revenue lift computed",
		slog.Float64("control_revenue", lift.ControlRevenue),
		slog.Float64("treated_revenue", lift.TreatedRevenue),
		slog.Float64("lift_percent", lift.LiftPercent))

	if err := writer.WriteFactTable(ctx, logger, cleaned.Records); err != nil {
		return err
	}
	if err := writer.WriteKPITable(ctx, logger, kpiRows); err != nil {
		return err
	}
	if err := writer.WriteDemandMatrix(ctx, logger, matrix); err != nil {
		return err
	}
	return writer.WriteRunReport(ctx, logger, report, lift)
}

// outputsCurrent reports whether every exported file already exists and is
// newer than the newest input workbook, in which case a rerun would only
// reproduce byte-identical files.
func outputsCurrent(paths *config.Paths, files []loader.FileInfo) bool {
	var newestInput time.Time
	for _, file := range files {
		if file.ModTime.After(newestInput) {
			newestInput = file.ModTime
		}
	}

	for _, out := range []string{paths.FactCSV, paths.KPICSV, paths.DemandCSV, paths.RunReportJSON} {
		info, err := os.Stat(out)
		if err != nil || info.ModTime().Before(newestInput) {
			return false
		}
	}
	return true
}
