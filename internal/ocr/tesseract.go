package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/joseph-ayodele/pdftext/internal/runner"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TessdataDir string

	PSM int // e.g., 6 is good for a uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	Normalize bool // collapse noisy whitespace in recognized text
}

// RecognitionError is an engine-reported failure for a single image:
// tesseract ran and exited non-zero. Anything else (missing binary,
// cancelled context) is returned as a plain error.
type RecognitionError struct {
	Stderr string
	Err    error
}

func (e *RecognitionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("tesseract: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("tesseract: %v", e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// Engine drives the tesseract binary. A failed call never affects
// subsequent calls; every invocation is an independent process.
type Engine struct {
	cfg    Config
	runner runner.Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, r runner.Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if r == nil {
		r = runner.Exec{}
	}
	return &Engine{cfg: cfg, runner: r, logger: logger}
}

// Languages returns the engine's installed language codes.
func (e *Engine) Languages(ctx context.Context) ([]string, error) {
	args := []string{"--list-langs"}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract --list-langs
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract --list-langs: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	// One code per line after a "List of available languages (N):" header.
	// Older builds print the header on stderr, so tolerate its absence.
	var langs []string
	for _, ln := range strings.Split(string(out), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "List of") {
			continue
		}
		langs = append(langs, ln)
	}
	e.logger.Debug("tesseract languages", "count", len(langs))
	return langs, nil
}

// Recognize runs OCR over one page image with the given "+"-joined
// language specification and returns the recognized text, possibly empty.
func (e *Engine) Recognize(ctx context.Context, imagePath, langSpec string) (string, error) {
	args := []string{imagePath, "stdout", "-l", langSpec}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <langs>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &RecognitionError{
				Stderr: runner.Truncate(strings.TrimSpace(string(errb)), 2<<10),
				Err:    err,
			}
		}
		return "", fmt.Errorf("run tesseract: %w", err)
	}

	txt := string(out)
	if e.cfg.Normalize {
		txt = Normalize(txt)
	}
	return txt, nil
}
