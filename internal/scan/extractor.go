// Package scan imports invoices from scanned PDF documents using Google
// Cloud Document AI's invoice parser.
//
// Required environment variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: path to a service account JSON file, OR
//   - GOOGLE_CREDENTIALS: inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID
//   - GOOGLE_CLOUD_LOCATION: processing location (e.g., "us", "eu")
//   - DOCUMENT_AI_PROCESSOR_ID: Document AI invoice processor ID
//
// Only the fields the ledger stores are extracted: invoice date, PO or
// reference number, a description, and the total amount. Everything else in
// the Document AI response is ignored.
package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/PF6771/eien-invoice/internal/logger"
)

// MaxDocumentSizeBytes is the maximum document size for synchronous
// Document AI processing (20MB).
const MaxDocumentSizeBytes = 20 * 1024 * 1024

// Config holds Document AI processing configuration.
type Config struct {
	// ProjectID is the Google Cloud project where Document AI is enabled.
	ProjectID string

	// Location is the processing location, matching where the processor was
	// created. Defaults to "us".
	Location string

	// ProcessorID identifies the invoice processor.
	ProcessorID string

	// ProcessorVersion pins a processor version; empty uses the default.
	ProcessorVersion string

	// Timeout is the maximum time to wait for processing. Default: 60s.
	Timeout time.Duration
}

// ExtractedInvoice carries the ledger-relevant fields pulled from a scan.
type ExtractedInvoice struct {
	Date        string
	PO          string
	Description string
	Amount      decimal.Decimal

	// Confidence maps Document AI entity types to their confidence scores
	// (0.0-1.0) for the fields that contributed to this result.
	Confidence map[string]float32
}

// Extractor extracts invoice fields from scanned documents.
type Extractor struct {
	client *documentai.DocumentProcessorClient
	config Config
	log    zerolog.Logger
}

// NewExtractor creates an extractor with credentials and configuration from
// the environment.
func NewExtractor(ctx context.Context) (*Extractor, error) {
	const op = "NewExtractor"

	config := Config{
		ProjectID:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:    os.Getenv("GOOGLE_CLOUD_LOCATION"),
		ProcessorID: os.Getenv("DOCUMENT_AI_PROCESSOR_ID"),
		Timeout:     60 * time.Second,
	}

	if config.ProjectID == "" {
		return nil, wrapExtractionError(op, ErrInvalidConfiguration, "GOOGLE_CLOUD_PROJECT is required")
	}
	if config.ProcessorID == "" {
		return nil, wrapExtractionError(op, ErrInvalidConfiguration, "DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	var clientOptions []option.ClientOption

	// Regional endpoint for non-US processors.
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, wrapExtractionError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, wrapExtractionError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &Extractor{
		client: client,
		config: config,
		log:    logger.WithComponent("scan"),
	}, nil
}

// Close releases the underlying Document AI client.
func (e *Extractor) Close() error {
	return e.client.Close()
}

// ExtractInvoice processes a scanned invoice PDF and returns the fields the
// ledger needs. A document without a recognizable total amount is rejected.
func (e *Extractor) ExtractInvoice(ctx context.Context, pdf io.Reader) (*ExtractedInvoice, error) {
	const op = "ExtractInvoice"

	pdfBytes, err := io.ReadAll(pdf)
	if err != nil {
		return nil, wrapExtractionError(op, err, "failed to read PDF data")
	}
	if len(pdfBytes) > MaxDocumentSizeBytes {
		return nil, wrapExtractionError(op, ErrDocumentTooLarge, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}
	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return nil, wrapExtractionError(op, ErrInvalidPDF, "missing PDF header")
	}

	processCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: e.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
	}

	resp, err := e.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, e.translateError(op, err)
	}
	if resp.Document == nil {
		return nil, wrapExtractionError(op, ErrExtractionFailed, "no document in response")
	}

	extracted := e.mapEntities(resp.Document)
	if extracted.Amount.IsZero() {
		return nil, wrapExtractionError(op, ErrNoAmount, "")
	}

	e.log.Info().
		Str("date", extracted.Date).
		Str("po", extracted.PO).
		Str("amount", extracted.Amount.String()).
		Msg("Invoice fields extracted from scan")
	return extracted, nil
}

// processorName constructs the full processor resource name.
func (e *Extractor) processorName() string {
	if e.config.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			e.config.ProjectID, e.config.Location, e.config.ProcessorID, e.config.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		e.config.ProjectID, e.config.Location, e.config.ProcessorID)
}

// translateError converts Document AI errors to scan sentinels.
func (e *Extractor) translateError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return wrapExtractionError(op, ErrInvalidCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "QUOTA_EXCEEDED"):
		return wrapExtractionError(op, ErrQuotaExceeded, "")
	case strings.Contains(errStr, "NOT_FOUND"):
		return wrapExtractionError(op, ErrProcessorNotFound, fmt.Sprintf("processor: %s", e.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return wrapExtractionError(op, ErrInvalidPDF, "document format not supported or corrupted")
	case strings.Contains(errStr, "context deadline exceeded"):
		return wrapExtractionError(op, context.DeadlineExceeded, "processing timeout")
	default:
		return wrapExtractionError(op, ErrExtractionFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// mapEntities converts Document AI invoice entities to ledger fields.
func (e *Extractor) mapEntities(doc *documentaipb.Document) *ExtractedInvoice {
	extracted := &ExtractedInvoice{
		Confidence: make(map[string]float32),
	}

	for _, entity := range doc.Entities {
		value := strings.TrimSpace(entity.MentionText)
		if value == "" && entity.NormalizedValue == nil {
			continue
		}

		e.log.Debug().
			Str("entity_type", entity.Type).
			Str("value", value).
			Float32("confidence", entity.Confidence).
			Msg("Processing Document AI entity")

		switch entity.Type {
		case "invoice_date":
			if date, ok := extractDate(entity); ok {
				extracted.Date = date
				extracted.Confidence[entity.Type] = entity.Confidence
			}
		case "purchase_order", "reference_number":
			if extracted.PO == "" {
				extracted.PO = value
				extracted.Confidence[entity.Type] = entity.Confidence
			}
		case "invoice_id", "invoice_number":
			// Fallback reference when no purchase order appears.
			if extracted.PO == "" {
				extracted.PO = value
				extracted.Confidence[entity.Type] = entity.Confidence
			}
		case "supplier_name", "vendor_name":
			if extracted.Description == "" {
				extracted.Description = value
				extracted.Confidence[entity.Type] = entity.Confidence
			}
		case "total_amount", "gross_amount":
			if amount, ok := extractMoney(entity); ok {
				extracted.Amount = amount
				extracted.Confidence[entity.Type] = entity.Confidence
			}
		}
	}

	if extracted.Description == "" {
		extracted.Description = "Imported from scanned invoice"
	}
	return extracted
}

// extractDate reads a date entity, preferring the normalized value and
// falling back to parsing the mention text.
func extractDate(entity *documentaipb.Document_Entity) (string, bool) {
	if nv := entity.NormalizedValue; nv != nil {
		if dv := nv.GetDateValue(); dv != nil {
			return fmt.Sprintf("%04d-%02d-%02d", dv.Year, dv.Month, dv.Day), true
		}
	}

	dateStr := strings.TrimSpace(entity.MentionText)
	if dateStr == "" {
		return "", false
	}

	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		"January 2, 2006",
		"Jan 2, 2006",
	}
	for _, format := range formats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date.Format("2006-01-02"), true
		}
	}

	// Keep the raw text; the ledger stores dates unvalidated anyway.
	return dateStr, true
}

// extractMoney reads a monetary entity, preferring the normalized value.
func extractMoney(entity *documentaipb.Document_Entity) (decimal.Decimal, bool) {
	if nv := entity.NormalizedValue; nv != nil {
		if mv := nv.GetMoneyValue(); mv != nil {
			units := decimal.NewFromInt(mv.Units)
			nanos := decimal.New(int64(mv.Nanos), -9)
			return units.Add(nanos), true
		}
	}

	raw := strings.TrimSpace(entity.MentionText)
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
