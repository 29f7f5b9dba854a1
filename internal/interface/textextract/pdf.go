package textextract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"ticketscan-service/pkg/logger"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor pulls plain text out of PDF tickets
type PDFExtractor struct {
	logger logger.Logger
}

// NewPDFExtractor creates a new PDF text extractor
func NewPDFExtractor(logger logger.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ExtractText reads the plain text of every page. The pdf library
// panics on malformed documents; panics are recovered into an error.
func (p *PDFExtractor) ExtractText(ctx context.Context, data []byte, filename string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panicked on %s: %v", filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("Failed to read PDF page", "filename", filename, "page", i, "error", err)
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	p.logger.Debug("PDF text extracted", "filename", filename, "pages", reader.NumPage(), "chars", sb.Len())
	return sb.String(), nil
}
