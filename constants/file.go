package constants

import (
	"fmt"
	"strings"
)

// DefaultLanguages is the language specification used when none is given:
// orientation/script detection plus English.
const DefaultLanguages = "osd+eng"

// DefaultDPI is the rasterization resolution for PDF pages.
const DefaultDPI = 300

// OCRErrorMarker is the block written in place of a page's text when the
// OCR engine reports a recognition failure. Page numbers are 1-based.
func OCRErrorMarker(page int) string {
	return fmt.Sprintf("[OCR ERROR ON PAGE %d]", page)
}

// UnknownErrorMarker is the block written when a page fails for any reason
// other than an engine-reported recognition failure.
func UnknownErrorMarker(page int) string {
	return fmt.Sprintf("[UNKNOWN ERROR ON PAGE %d]", page)
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether ext (with or without a leading dot) is "pdf".
func IsPDFExt(ext string) bool {
	return NormalizeExt(ext) == "pdf"
}
