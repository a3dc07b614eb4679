package common

import (
	"errors"
	"fmt"
	"strings"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Terminal pipeline conditions. Each aborts the whole extraction; only
// per-page recognition failures are recovered locally (see internal/extract).
var (
	ErrNotFound            = errors.New("source file not found")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoPages             = errors.New("document produced no pages")
	ErrRasterize           = errors.New("rasterization failed")
	ErrWrite               = errors.New("output write failed")
	ErrInvalidInput        = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// UnsupportedLanguageError reports a language code missing from the OCR
// engine's inventory, carrying the full supported set for diagnostics.
type UnsupportedLanguageError struct {
	Code      string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q is not supported by the OCR engine; available languages: %s",
		e.Code, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedLanguageError) Unwrap() error {
	return ErrUnsupportedLanguage
}
