package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, "osd+eng", cfg.OCR.Languages)
	assert.Equal(t, 300, cfg.Raster.DPI)
	assert.Equal(t, "pdftoppm", cfg.Raster.Pdftoppm)
	assert.Zero(t, cfg.Raster.MaxPages)
	assert.Empty(t, cfg.History.Path)
	assert.False(t, cfg.OCR.Normalize)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OCR_LANGUAGES", "osd+rus")
	t.Setenv("OCR_DPI", "400")
	t.Setenv("POPPLER_PATH", "/opt/poppler/bin")
	t.Setenv("OCR_NORMALIZE", "true")
	t.Setenv("HISTORY_DB", "/tmp/runs.db")

	cfg := LoadConfig()
	assert.Equal(t, "osd+rus", cfg.OCR.Languages)
	assert.Equal(t, 400, cfg.Raster.DPI)
	assert.Equal(t, "/opt/poppler/bin", cfg.Raster.PopplerDir)
	assert.True(t, cfg.OCR.Normalize)
	assert.Equal(t, "/tmp/runs.db", cfg.History.Path)
}

func TestLoadConfigIgnoresUnparsableEnv(t *testing.T) {
	t.Setenv("OCR_DPI", "not-a-number")
	cfg := LoadConfig()
	assert.Equal(t, 300, cfg.Raster.DPI)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	cfg.OCR.Languages = ""
	require.ErrorIs(t, cfg.Validate(), ErrInvalidInput)

	cfg = LoadConfig()
	cfg.Raster.DPI = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidInput)

	cfg = LoadConfig()
	cfg.OCR.PSM = 14
	require.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}
