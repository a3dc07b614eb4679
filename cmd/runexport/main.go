package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/pdftext/internal/common"
	"github.com/joseph-ayodele/pdftext/internal/export"
	"github.com/joseph-ayodele/pdftext/internal/repository"
)

// runexport writes the recorded run history as an XLSX workbook.
func main() {
	_ = godotenv.Load()

	history := flag.String("history", "", "SQLite run-history file (default from HISTORY_DB)")
	out := flag.String("o", "runs.xlsx", "output workbook path")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *history != "" {
		cfg.History.Path = *history
	}
	if cfg.History.Path == "" {
		logger.Error("usage", "cmd", "runexport -history <runs.db> [-o runs.xlsx]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.Open(ctx, cfg.History.Path, logger)
	if err != nil {
		logger.Error("open history db", "path", cfg.History.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close history db", "error", cerr)
		}
	}()

	svc := export.NewService(repository.NewRunRepository(db, logger), logger)
	b, err := svc.ExportRunsXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		logger.Error("write workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out, "bytes", len(b))
}
