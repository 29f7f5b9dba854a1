package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ticketscan-service/internal/domain/entity"
	"ticketscan-service/pkg/logger"
)

// TextExtractor defines the interface for pulling text out of a ticket file
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// imageExtensions lists the upload extensions routed to OCR
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ExtractorRouter picks the text extractor for a ticket by file type
type ExtractorRouter struct {
	pdf    TextExtractor
	ocr    TextExtractor // nil when OCR is not configured
	logger logger.Logger
}

// NewExtractorRouter creates a new extractor router
func NewExtractorRouter(pdf, ocr TextExtractor, logger logger.Logger) *ExtractorRouter {
	return &ExtractorRouter{
		pdf:    pdf,
		ocr:    ocr,
		logger: logger,
	}
}

// ExtractText routes the file to the PDF or OCR extractor. A PDF that
// fails to parse falls back to OCR when OCR is configured. OCR runtime
// errors yield empty text; the caller's length check decides the outcome.
func (r *ExtractorRouter) ExtractText(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case ext == ".pdf" || contentType == "application/pdf":
		text, err := r.pdf.ExtractText(ctx, data, filename)
		if err == nil {
			return text, nil
		}
		r.logger.Warn("PDF extraction failed", "filename", filename, "error", err)
		if r.ocr == nil {
			return "", entity.NewExtractionError(entity.ErrCodePDFParseFailure,
				"Could not parse the PDF ticket")
		}
		return r.runOCR(ctx, data, filename), nil

	case imageExtensions[ext] || strings.HasPrefix(contentType, "image/"):
		if r.ocr == nil {
			return "", entity.NewExtractionError(entity.ErrCodeImageOCRUnavailable,
				"Image tickets need OCR, which is not configured")
		}
		return r.runOCR(ctx, data, filename), nil

	default:
		return "", entity.NewExtractionError(entity.ErrCodeUnsupportedFileType,
			fmt.Sprintf("Unsupported file type %q, expected a PDF or an image", ext))
	}
}

func (r *ExtractorRouter) runOCR(ctx context.Context, data []byte, filename string) string {
	text, err := r.ocr.ExtractText(ctx, data, filename)
	if err != nil {
		r.logger.Warn("OCR extraction failed", "filename", filename, "error", err)
		return ""
	}
	return text
}
