package raster

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/runner"
)

type Config struct {
	Pdftoppm   string // binary name or absolute path; if empty -> "pdftoppm"
	PopplerDir string // optional directory containing the poppler binaries
	DPI        int    // rasterization DPI, default 300
	MaxPages   int    // 0 = no limit
}

// Poppler renders PDF pages to PNG files with pdftoppm. Rendering is
// all-or-nothing: either every page image is produced or the call fails.
type Poppler struct {
	cfg    Config
	runner runner.Runner
	logger *slog.Logger
}

func NewPoppler(cfg Config, r runner.Runner, logger *slog.Logger) *Poppler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = constants.DefaultDPI
	}
	if r == nil {
		r = runner.Exec{}
	}
	return &Poppler{cfg: cfg, runner: r, logger: logger}
}

// Rasterize renders every page of pdfPath into a temp directory and returns
// the image paths in page order plus a cleanup func for the temp files.
// An empty result with a nil error means the document yielded no pages.
func (p *Poppler) Rasterize(ctx context.Context, pdfPath string) ([]string, func(), error) {
	// Advisory only: poppler tolerates damage pdfcpu rejects, so a failed
	// preflight is logged and ignored.
	if n, err := preflightPageCount(pdfPath); err != nil {
		p.logger.Debug("pdf preflight failed", "path", pdfPath, "error", err)
	} else {
		p.logger.Debug("pdf preflight", "path", pdfPath, "pages", n)
	}

	tmpDir, err := os.MkdirTemp("", "pdftext-pp-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			p.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", rerr)
		}
	}

	bin := p.cfg.Pdftoppm
	if p.cfg.PopplerDir != "" {
		bin = filepath.Join(p.cfg.PopplerDir, bin)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := p.runner.Run(ctx, bin, "-r", strconv.Itoa(p.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return nil, cleanup, fmt.Errorf("pdftoppm: %w: %s", err, runner.Truncate(strings.TrimSpace(string(errb)), 2<<10))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sortByPageSuffix(matches)
	if p.cfg.MaxPages > 0 && len(matches) > p.cfg.MaxPages {
		matches = matches[:p.cfg.MaxPages]
	}

	p.logger.Info("pdf rasterized", "path", pdfPath, "dpi", p.cfg.DPI, "pages", len(matches))
	return matches, cleanup, nil
}

var rePageSuffix = regexp.MustCompile(`-(\d+)\.png$`)

// sortByPageSuffix orders pdftoppm output by its numeric page suffix.
// pdftoppm zero-pads per document, so a lexical sort would interleave
// page-10 before page-2 on unpadded names.
func sortByPageSuffix(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return pageSuffix(paths[i]) < pageSuffix(paths[j])
	})
}

func pageSuffix(path string) int {
	m := rePageSuffix.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
