package validation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"retailprep/internal/errors"
)

// WorkbookValidator checks input workbooks before the loader touches them,
// so a bad path fails with a clear message instead of a deep parse error.
type WorkbookValidator struct {
	logger *slog.Logger
}

// NewWorkbookValidator creates a new workbook validator
func NewWorkbookValidator(logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{logger: logger}
}

// ValidateInputDirectory validates that the input directory exists and
// reports how many workbooks match the pattern. An empty directory is not
// an error; there is just nothing to process.
func (v *WorkbookValidator) ValidateInputDirectory(ctx context.Context, dir, pattern string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.ErrorContext(ctx, "Input directory does not exist",
			slog.String("directory", dir))
		return errors.NewNotFoundError(fmt.Sprintf("input directory %s", dir))
	}
	if err != nil {
		return errors.NewStorageError("failed to stat input directory", err).
			WithContext("directory", dir)
	}
	if !info.IsDir() {
		return errors.NewValidationError(fmt.Sprintf("%s is not a directory", dir), nil)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return errors.NewStorageError("failed to check for workbooks", err).
			WithContext("pattern", pattern)
	}

	if len(matches) == 0 {
		v.logger.WarnContext(ctx, "No workbooks matching pattern found",
			slog.String("directory", dir),
			slog.String("pattern", pattern))
		return nil
	}

	v.logger.InfoContext(ctx, "Input directory validated",
		slog.String("directory", dir),
		slog.Int("files_found", len(matches)))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists and is
// writable by creating and removing a probe file.
func (v *WorkbookValidator) ValidateOutputDirectory(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("directory", dir)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return errors.NewStorageError("output directory is not writable", err).
			WithContext("directory", dir)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.InfoContext(ctx, "Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path is an existing, readable, non-temporary
// Excel workbook.
func (v *WorkbookValidator) ValidateFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewNotFoundError(fmt.Sprintf("workbook %s", path))
	}
	if err != nil {
		return errors.NewStorageError("failed to stat workbook", err).
			WithContext("file", path)
	}
	if info.IsDir() {
		return errors.NewValidationError(fmt.Sprintf("%s is a directory, not a workbook", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return errors.NewValidationError(
			fmt.Sprintf("file %s is not an Excel workbook (extension: %s)", path, ext), nil)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return errors.NewValidationError(
			fmt.Sprintf("file %s is a temporary Excel lock file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.NewStorageError("workbook is not readable", err).
			WithContext("file", path)
	}
	file.Close()

	v.logger.DebugContext(ctx, "Workbook validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
