package common

import (
	"os"
	"strconv"

	"github.com/joseph-ayodele/pdftext/constants"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Raster  RasterConfig
	History HistoryConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Languages   string // "+"-joined engine language codes
	PSM         int    // e.g., 6 is good for a uniform block of text
	OEM         int    // 1 = LSTM; leave 0 to use default
	Normalize   bool   // collapse noisy whitespace in recognized text
}

// RasterConfig holds PDF rasterization configuration
type RasterConfig struct {
	Pdftoppm   string // binary name or absolute path; if empty -> "pdftoppm"
	PopplerDir string // optional directory containing the poppler binaries
	DPI        int
	MaxPages   int // 0 = no limit
}

// HistoryConfig holds run-history configuration
type HistoryConfig struct {
	Path string // SQLite file; empty disables history recording
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Languages:   getEnv("OCR_LANGUAGES", constants.DefaultLanguages),
			PSM:         getEnvAsInt("OCR_PSM", 0),
			OEM:         getEnvAsInt("OCR_OEM", 0),
			Normalize:   getEnvAsBool("OCR_NORMALIZE", false),
		},
		Raster: RasterConfig{
			Pdftoppm:   getEnv("PDFTOPPM_BIN", "pdftoppm"),
			PopplerDir: getEnv("POPPLER_PATH", ""),
			DPI:        getEnvAsInt("OCR_DPI", constants.DefaultDPI),
			MaxPages:   getEnvAsInt("MAX_PAGES", 0),
		},
		History: HistoryConfig{
			Path: getEnv("HISTORY_DB", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Languages == "" {
		return NewAppError("CONFIG_ERROR", "OCR_LANGUAGES must not be empty", ErrInvalidInput)
	}
	if c.Raster.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		return NewAppError("CONFIG_ERROR", "OCR_PSM must be in 0..13", ErrInvalidInput)
	}
	if c.OCR.OEM < 0 || c.OCR.OEM > 3 {
		return NewAppError("CONFIG_ERROR", "OCR_OEM must be in 0..3", ErrInvalidInput)
	}
	return nil
}
