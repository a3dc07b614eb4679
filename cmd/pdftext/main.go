package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/common"
	"github.com/joseph-ayodele/pdftext/internal/extract"
	"github.com/joseph-ayodele/pdftext/internal/ocr"
	"github.com/joseph-ayodele/pdftext/internal/profile"
	"github.com/joseph-ayodele/pdftext/internal/raster"
	"github.com/joseph-ayodele/pdftext/internal/repository"
	"github.com/joseph-ayodele/pdftext/internal/runner"
)

func main() {
	_ = godotenv.Load()

	in := flag.String("in", "", "path to the source PDF (required)")
	out := flag.String("out", "extracted_text.txt", "path of the output text file")
	lang := flag.String("lang", "", `"+"-joined OCR language codes (default from OCR_LANGUAGES, or osd+eng)`)
	dpi := flag.Int("dpi", 0, "rasterization DPI (default from OCR_DPI, or 300)")
	poppler := flag.String("poppler", "", "directory containing the poppler binaries")
	profilePath := flag.String("profile", "", "path to a JSON extraction profile")
	history := flag.String("history", "", "SQLite file for run history (default from HISTORY_DB; empty disables)")
	normalize := flag.Bool("normalize", false, "collapse noisy whitespace in recognized text")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *in == "" {
		logger.Error("usage", "cmd", "pdftext -in <file.pdf> [-out <file.txt>] [-lang osd+eng]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if *profilePath != "" {
		p, err := profile.Load(*profilePath)
		if err != nil {
			logger.Error("invalid profile", "path", *profilePath, "error", err)
			os.Exit(2)
		}
		p.Apply(cfg)
	}
	// Flags override both env and profile.
	if *lang != "" {
		cfg.OCR.Languages = *lang
	}
	if *dpi > 0 {
		cfg.Raster.DPI = *dpi
	}
	if *poppler != "" {
		cfg.Raster.PopplerDir = *poppler
	}
	if *normalize {
		cfg.OCR.Normalize = true
	}
	if *history != "" {
		cfg.History.Path = *history
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	if !constants.IsPDFExt(filepath.Ext(*in)) {
		logger.Warn("source does not have a .pdf extension", "path", *in)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := runner.Exec{}
	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
		Normalize:   cfg.OCR.Normalize,
	}, r, logger)
	rast := raster.NewPoppler(raster.Config{
		Pdftoppm:   cfg.Raster.Pdftoppm,
		PopplerDir: cfg.Raster.PopplerDir,
		DPI:        cfg.Raster.DPI,
		MaxPages:   cfg.Raster.MaxPages,
	}, r, logger)
	x := extract.NewExtractor(rast, engine, logger)

	req := extract.Request{
		SourcePath: *in,
		OutputPath: *out,
		Languages:  cfg.OCR.Languages,
	}

	start := time.Now()
	outcome, err := x.Extract(ctx, req)
	finished := time.Now()

	recordRun(ctx, cfg.History.Path, logger, req, outcome, err, start, finished)

	dur := finished.Sub(start)
	switch {
	case err != nil:
		logger.Error("extraction failed", "error", err, "duration_ms", dur.Milliseconds())
		fmt.Println("Processing failed. Check the log for details.")
		os.Exit(1)
	case !outcome.Success:
		logger.Warn("extraction completed with page errors",
			"pages", len(outcome.Pages), "duration_ms", dur.Milliseconds())
		fmt.Println("Processing completed with errors. Check the log for details.")
		os.Exit(1)
	default:
		logger.Info("extraction ok",
			"pages", len(outcome.Pages), "bytes", len(outcome.Text), "duration_ms", dur.Milliseconds())
		fmt.Println("Processing completed successfully!")
	}
}

// recordRun persists the invocation to the run history. Best effort: a
// history failure never changes the process outcome.
func recordRun(ctx context.Context, historyPath string, logger *slog.Logger,
	req extract.Request, outcome extract.Outcome, runErr error, start, finished time.Time) {
	if historyPath == "" {
		return
	}
	db, err := repository.Open(ctx, historyPath, logger)
	if err != nil {
		logger.Warn("run history unavailable", "path", historyPath, "error", err)
		return
	}
	defer func() { _ = db.Close() }()

	failed := 0
	for _, p := range outcome.Pages {
		if p.Err != nil {
			failed++
		}
	}
	status := constants.RunStatusSucceeded
	errMsg := ""
	switch {
	case runErr != nil:
		status = constants.RunStatusFailed
		errMsg = runErr.Error()
	case !outcome.Success:
		status = constants.RunStatusPagesFailed
	}

	run := repository.Run{
		ID:           uuid.New(),
		SourcePath:   req.SourcePath,
		OutputPath:   req.OutputPath,
		Languages:    req.Languages,
		Pages:        len(outcome.Pages),
		FailedPages:  failed,
		Status:       status,
		ErrorMessage: errMsg,
		StartedAt:    start,
		FinishedAt:   finished,
	}
	if err := repository.NewRunRepository(db, logger).Record(ctx, run); err != nil {
		logger.Warn("run history record failed", "error", err)
	}
}
