package loader

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"retailprep/internal/infrastructure"
	"retailprep/pkg/contracts/domain"
)

// LoadAll parses every discovered workbook and merges the results into one
// dataset. Workbooks are parsed concurrently; rows are purely independent at
// this stage, so only the concatenation order matters for determinism and
// that follows the (sorted) input file order, not completion order.
func LoadAll(ctx context.Context, files []FileInfo) (*domain.Dataset, error) {
	logger := infrastructure.LoggerFromContext(ctx)
	results := make([]*domain.Dataset, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger.Info("Loading workbook",
				slog.String("filename", file.Name),
				slog.Int64("size_bytes", file.Size))

			dataset, err := ParseWorkbook(file.Path)
			if err != nil {
				return err
			}
			results[i] = dataset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &domain.Dataset{}
	for _, dataset := range results {
		merged.Records = append(merged.Records, dataset.Records...)
	}

	logger.Info("Workbooks loaded",
		slog.Int("file_count", len(files)),
		slog.Int("record_count", len(merged.Records)))

	return merged, nil
}
