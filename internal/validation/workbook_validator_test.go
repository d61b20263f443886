package validation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retailprep/internal/errors"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewWorkbookValidator(nil)
	ctx := context.Background()
	dir := t.TempDir()

	// Empty directory is fine, just nothing to do.
	assert.NoError(t, v.ValidateInputDirectory(ctx, dir, "*.xlsx"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xlsx"), []byte("x"), 0644))
	assert.NoError(t, v.ValidateInputDirectory(ctx, dir, "*.xlsx"))
}

func TestValidateInputDirectory_Missing(t *testing.T) {
	v := NewWorkbookValidator(nil)
	err := v.ValidateInputDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"), "*.xlsx")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestValidateInputDirectory_NotADirectory(t *testing.T) {
	v := NewWorkbookValidator(nil)
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.Error(t, v.ValidateInputDirectory(context.Background(), file, "*.xlsx"))
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewWorkbookValidator(nil)
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	require.NoError(t, v.ValidateOutputDirectory(context.Background(), dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Probe file is cleaned up.
	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidateFile(t *testing.T) {
	v := NewWorkbookValidator(nil)
	ctx := context.Background()
	dir := t.TempDir()

	good := filepath.Join(dir, "june.xlsx")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0644))

	tests := []struct {
		name    string
		path    string
		setup   func() string
		wantErr bool
	}{
		{"valid workbook", good, nil, false},
		{"missing file", filepath.Join(dir, "absent.xlsx"), nil, true},
		{"wrong extension", "", func() string {
			p := filepath.Join(dir, "notes.txt")
			require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
			return p
		}, true},
		{"office lock file", "", func() string {
			p := filepath.Join(dir, "~$june.xlsx")
			require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
			return p
		}, true},
		{"directory", dir, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if tt.setup != nil {
				path = tt.setup()
			}
			err := v.ValidateFile(ctx, path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
