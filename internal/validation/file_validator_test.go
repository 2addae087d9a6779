package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0644))

		assert.NoError(t, validator.ValidateInputDirectory(dir, "*.csv"))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := validator.ValidateInputDirectory(filepath.Join(t.TempDir(), "nope"), "*.csv")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		err := validator.ValidateInputDirectory(file, "*.csv")
		assert.Error(t, err)
	})

	t.Run("empty directory is not an error", func(t *testing.T) {
		assert.NoError(t, validator.ValidateInputDirectory(t.TempDir(), "*.csv"))
	})
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "nested")

		require.NoError(t, validator.ValidateOutputDirectory(dir))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("removes the write probe", func(t *testing.T) {
		dir := t.TempDir()

		require.NoError(t, validator.ValidateOutputDirectory(dir))
		_, err := os.Stat(filepath.Join(dir, ".write_test"))
		assert.True(t, os.IsNotExist(err))
	})
}
