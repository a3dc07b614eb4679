package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/common"
	"github.com/joseph-ayodele/pdftext/internal/ocr"
)

// Request describes one extraction. Immutable once constructed.
type Request struct {
	SourcePath string
	OutputPath string
	Languages  string // "+"-joined engine language codes, e.g. "osd+eng"
}

// PageResult is the outcome for a single page: recognized text on success,
// or the marker block plus the underlying error on failure.
type PageResult struct {
	Page int // 1-based
	Text string
	Err  error
}

// Outcome is the result of a completed run. Success is false if any page
// failed, even though the output file was still written.
type Outcome struct {
	Success bool
	Pages   []PageResult
	Text    string // exactly what was written to the output file
}

// Extractor runs the document pipeline: validate, rasterize, OCR each
// page, write the joined text. Stateless between calls.
type Extractor struct {
	raster Rasterizer
	engine Engine
	logger *slog.Logger
}

func NewExtractor(r Rasterizer, e Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{raster: r, engine: e, logger: logger}
}

// Extract runs the pipeline for one document.
//
// Terminal conditions (missing source, unsupported language, rasterization
// failure, empty document, unwritable output) are returned as errors and
// leave no output file. Per-page recognition failures are recovered
// locally: the page's block becomes an error marker, Success drops to
// false, and the remaining pages are still processed and written.
func (x *Extractor) Extract(ctx context.Context, req Request) (Outcome, error) {
	if _, err := os.Stat(req.SourcePath); err != nil {
		x.logger.Error("pdf file not found", "path", req.SourcePath)
		return Outcome{}, common.NewAppError("NOT_FOUND",
			fmt.Sprintf("pdf file not found: %s", req.SourcePath), common.ErrNotFound)
	}

	if err := x.checkLanguages(ctx, req.Languages); err != nil {
		x.logger.Error("language verification failed", "languages", req.Languages, "error", err)
		return Outcome{}, err
	}

	x.logger.Info("converting pdf to images", "path", req.SourcePath)
	pages, cleanup, err := x.raster.Rasterize(ctx, req.SourcePath)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		x.logger.Error("pdf conversion failed", "path", req.SourcePath, "error", err)
		return Outcome{}, common.NewAppError("RASTERIZE", "pdf conversion failed",
			fmt.Errorf("%w: %w", common.ErrRasterize, err))
	}
	if len(pages) == 0 {
		x.logger.Error("no images produced from pdf (file may be corrupted or empty)", "path", req.SourcePath)
		return Outcome{}, common.NewAppError("NO_PAGES",
			fmt.Sprintf("no images produced from %s", req.SourcePath), common.ErrNoPages)
	}

	out := Outcome{Success: true, Pages: make([]PageResult, 0, len(pages))}
	blocks := make([]string, 0, len(pages))
	for i, img := range pages {
		n := i + 1
		x.logger.Info("processing page", "page", n, "pages", len(pages))

		text, rerr := x.engine.Recognize(ctx, img, req.Languages)
		if rerr == nil {
			blocks = append(blocks, text)
			out.Pages = append(out.Pages, PageResult{Page: n, Text: text})
			x.logger.Debug("page recognized", "page", n, "bytes", len(text))
			continue
		}

		var marker string
		var recErr *ocr.RecognitionError
		if errors.As(rerr, &recErr) {
			marker = constants.OCRErrorMarker(n)
			x.logger.Error("ocr error on page", "page", n, "error", rerr)
		} else {
			marker = constants.UnknownErrorMarker(n)
			x.logger.Error("unexpected error on page", "page", n, "error", rerr)
		}
		blocks = append(blocks, marker)
		out.Pages = append(out.Pages, PageResult{Page: n, Text: marker, Err: rerr})
		out.Success = false
	}

	out.Text = strings.Join(blocks, "\n")
	if err := os.WriteFile(req.OutputPath, []byte(out.Text), 0o644); err != nil {
		x.logger.Error("failed to save result", "path", req.OutputPath, "error", err)
		return Outcome{}, common.NewAppError("WRITE",
			fmt.Sprintf("failed to save result to %s", req.OutputPath),
			fmt.Errorf("%w: %w", common.ErrWrite, err))
	}

	x.logger.Info("result saved", "path", req.OutputPath, "pages", len(pages), "success", out.Success)
	return out, nil
}

// checkLanguages verifies every requested code against the engine's
// inventory before any rasterization work is spent.
func (x *Extractor) checkLanguages(ctx context.Context, spec string) error {
	supported, err := x.engine.Languages(ctx)
	if err != nil {
		return common.NewAppError("LANG_CHECK", "could not query supported languages", err)
	}
	set := make(map[string]struct{}, len(supported))
	for _, l := range supported {
		set[l] = struct{}{}
	}
	for _, code := range strings.Split(spec, "+") {
		if _, ok := set[code]; !ok {
			return &common.UnsupportedLanguageError{Code: code, Supported: supported}
		}
	}
	return nil
}
