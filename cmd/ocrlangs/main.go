package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/pdftext/internal/common"
	"github.com/joseph-ayodele/pdftext/internal/ocr"
	"github.com/joseph-ayodele/pdftext/internal/runner"
)

// ocrlangs prints the OCR engine's installed language codes, one per line.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
	}, runner.Exec{}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	langs, err := engine.Languages(ctx)
	if err != nil {
		logger.Error("could not list languages", "error", err)
		os.Exit(1)
	}
	for _, l := range langs {
		fmt.Println(l)
	}
}
