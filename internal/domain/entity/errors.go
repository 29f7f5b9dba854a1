package entity

import "errors"

// Terminal extraction failure codes surfaced to API clients
const (
	ErrCodeUnsupportedFileType = "unsupported_file_type"
	ErrCodePDFParseFailure     = "pdf_parse_failure"
	ErrCodeInsufficientText    = "insufficient_text"
	ErrCodeImageOCRUnavailable = "image_ocr_unavailable"
)

// ExtractionError is a terminal extraction failure with a stable code
type ExtractionError struct {
	Code    string
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// NewExtractionError creates an extraction error with the given code
func NewExtractionError(code, message string) *ExtractionError {
	return &ExtractionError{Code: code, Message: message}
}

// AsExtractionError reports whether err is (or wraps) an ExtractionError
func AsExtractionError(err error) (*ExtractionError, bool) {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
