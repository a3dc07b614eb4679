package extract

import "context"

// Rasterizer renders a PDF into one image file per page, in page order.
// It never partially succeeds: all pages, or an error for the whole call.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string) (pages []string, cleanup func(), err error)
}

// Engine is the OCR collaborator: a language inventory plus per-image
// recognition. Recognition failures are page-scoped and must not affect
// subsequent calls.
type Engine interface {
	Languages(ctx context.Context) ([]string, error)
	Recognize(ctx context.Context, imagePath, langSpec string) (string, error)
}
