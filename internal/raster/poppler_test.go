package raster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageWriter mimics pdftoppm: it writes <prefix>-<n>.png files for the
// prefix given as the last argument.
type pageWriter struct {
	pages   int
	err     error
	stderr  string
	gotName string
	gotArgs []string
}

func (w *pageWriter) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	w.gotName = name
	w.gotArgs = args
	if w.err != nil {
		return nil, []byte(w.stderr), w.err
	}
	prefix := args[len(args)-1]
	for i := 1; i <= w.pages; i++ {
		if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

func TestRasterizeOrdersPagesNumerically(t *testing.T) {
	w := &pageWriter{pages: 12}
	p := NewPoppler(Config{}, w, nil)

	pages, cleanup, err := p.Rasterize(context.Background(), "doc.pdf")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.Len(t, pages, 12)

	for i, path := range pages {
		assert.Equal(t, fmt.Sprintf("page-%d.png", i+1), filepath.Base(path),
			"pages must come back in page order, not lexical order")
	}
}

func TestRasterizeDefaultsAndArgs(t *testing.T) {
	w := &pageWriter{pages: 1}
	p := NewPoppler(Config{}, w, nil)

	_, cleanup, err := p.Rasterize(context.Background(), "doc.pdf")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.Equal(t, "pdftoppm", w.gotName)
	require.Len(t, w.gotArgs, 5)
	assert.Equal(t, []string{"-r", "300", "-png", "doc.pdf"}, w.gotArgs[:4])
}

func TestRasterizePopplerDirPrefixesBinary(t *testing.T) {
	w := &pageWriter{pages: 1}
	p := NewPoppler(Config{PopplerDir: "/opt/poppler/bin"}, w, nil)

	_, cleanup, err := p.Rasterize(context.Background(), "doc.pdf")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.Equal(t, filepath.Join("/opt/poppler/bin", "pdftoppm"), w.gotName)
}

func TestRasterizeZeroPages(t *testing.T) {
	w := &pageWriter{pages: 0}
	p := NewPoppler(Config{}, w, nil)

	pages, cleanup, err := p.Rasterize(context.Background(), "empty.pdf")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	assert.Empty(t, pages)
}

func TestRasterizeMaxPages(t *testing.T) {
	w := &pageWriter{pages: 5}
	p := NewPoppler(Config{MaxPages: 3}, w, nil)

	pages, cleanup, err := p.Rasterize(context.Background(), "doc.pdf")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.Len(t, pages, 3)
	assert.Equal(t, "page-3.png", filepath.Base(pages[2]))
}

func TestRasterizeFailureIncludesStderr(t *testing.T) {
	w := &pageWriter{err: errors.New("exit status 1"), stderr: "Syntax Error: couldn't read xref table"}
	p := NewPoppler(Config{}, w, nil)

	_, cleanup, err := p.Rasterize(context.Background(), "broken.pdf")
	require.Error(t, err)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}
	assert.Contains(t, err.Error(), "xref table")
}

func TestRasterizeCleanupRemovesImages(t *testing.T) {
	w := &pageWriter{pages: 2}
	p := NewPoppler(Config{}, w, nil)

	pages, cleanup, err := p.Rasterize(context.Background(), "doc.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.FileExists(t, pages[0])

	cleanup()
	assert.NoFileExists(t, pages[0])
	assert.NoFileExists(t, pages[1])
}

func TestPageSuffixParsing(t *testing.T) {
	assert.Equal(t, 10, pageSuffix("/tmp/x/page-10.png"))
	assert.Equal(t, 2, pageSuffix("/tmp/x/page-02.png"))
	assert.Equal(t, 0, pageSuffix("/tmp/x/page.png"))
}
