package scan

import (
	"errors"
	"fmt"
)

// Common scan errors.
var (
	// ErrInvalidPDF is returned when the provided data is not a valid PDF
	// document or cannot be processed by Document AI.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrExtractionFailed is returned when Document AI processing fails.
	ErrExtractionFailed = errors.New("document AI extraction failed")

	// ErrNoAmount is returned when no total amount could be extracted, since
	// an invoice cannot enter the ledger without one.
	ErrNoAmount = errors.New("no total amount found in document")

	// ErrInvalidCredentials is returned when Google Cloud credentials are
	// invalid or lack the necessary permissions.
	ErrInvalidCredentials = errors.New("invalid Google Cloud credentials")

	// ErrMissingCredentials is returned when Google Cloud credentials are not
	// configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials")

	// ErrInvalidConfiguration is returned when the Document AI configuration
	// is incomplete.
	ErrInvalidConfiguration = errors.New("invalid Document AI configuration")

	// ErrProcessorNotFound is returned when the configured processor cannot
	// be found or accessed.
	ErrProcessorNotFound = errors.New("Document AI processor not found")

	// ErrQuotaExceeded is returned when Document AI API quota limits are hit.
	ErrQuotaExceeded = errors.New("Document AI API quota exceeded")

	// ErrDocumentTooLarge is returned when the PDF exceeds size limits.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size limit")
)

// ExtractionError wraps errors with context about the failed scan.
type ExtractionError struct {
	// Op is the operation that failed (e.g., "ExtractInvoice").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("scan: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("scan: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func wrapExtractionError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return err
	}
	return &ExtractionError{Op: op, Err: err, Details: details}
}
