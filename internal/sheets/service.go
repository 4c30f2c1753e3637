// Package sheets exports ledger invoices to a Google Sheet.
package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/pkg/models"
)

// Column headers written to a fresh worksheet, in export order.
var headerRow = []string{
	"Customer", "Date", "PO", "Description",
	"Amount", "Paid", "Balance", "Status",
	"Payment Link", "Exported At",
}

// Service handles Google Sheets operations.
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// NewService creates a sheets service for the spreadsheet behind the given
// URL. Credentials come from GOOGLE_APPLICATION_CREDENTIALS or
// GOOGLE_CREDENTIALS, as a service account JSON.
func NewService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}
	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	var creds []byte
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	client := config.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func extractSpreadsheetID(url string) (string, error) {
	re := regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}

// ExportInvoices appends one row per invoice to the named worksheet,
// creating it with a header row when it does not exist yet.
func (s *Service) ExportInvoices(ctx context.Context, customer string, invoices []models.Invoice, worksheet string) error {
	const op = "ExportInvoices"

	s.log.Info().
		Str("worksheet", worksheet).
		Str("customer", customer).
		Int("rows", len(invoices)).
		Msg("Exporting invoices to Google Sheet")

	if err := s.ensureWorksheetWithHeaders(ctx, worksheet); err != nil {
		return fmt.Errorf("%s: failed to ensure worksheet exists: %w", op, err)
	}

	exportedAt := time.Now().Format("2006-01-02 15:04:05")
	var values [][]interface{}
	for _, invoice := range invoices {
		values = append(values, invoiceToValues(customer, invoice, exportedAt))
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		worksheet+"!A:J",
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to append values to sheet: %w", op, err)
	}

	s.log.Info().
		Int("rows_written", len(values)).
		Msg("Invoices exported to Google Sheet")
	return nil
}

// invoiceToValues converts one invoice to a sheet row.
func invoiceToValues(customer string, invoice models.Invoice, exportedAt string) []interface{} {
	status := "OUTSTANDING"
	if !invoice.Outstanding() {
		status = "PAID"
	}

	return []interface{}{
		customer,                              // A: Customer
		invoice.Date,                          // B: Date
		invoice.PO,                            // C: PO
		invoice.Description,                   // D: Description
		ledger.FormatMoney(invoice.Amount),    // E: Amount
		ledger.FormatMoney(invoice.Paid),      // F: Paid
		ledger.FormatMoney(invoice.Balance()), // G: Balance
		status,                                // H: Status
		invoice.PaymentLink,                   // I: Payment Link
		exportedAt,                            // J: Exported At
	}
}

// ensureWorksheetWithHeaders ensures the worksheet exists and carries the
// header row.
func (s *Service) ensureWorksheetWithHeaders(ctx context.Context, worksheet string) error {
	const op = "ensureWorksheetWithHeaders"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	var exists bool
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == worksheet {
			exists = true
			break
		}
	}

	if !exists {
		s.log.Info().Str("worksheet", worksheet).Msg("Creating new worksheet")

		batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: worksheet},
				}},
			},
		}
		if _, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do(); err != nil {
			return fmt.Errorf("%s: failed to create worksheet: %w", op, err)
		}
	}

	headerRange := fmt.Sprintf("%s!A1:J1", worksheet)
	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get headers: %w", op, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		s.log.Info().Str("worksheet", worksheet).Msg("Adding header row")

		header := make([]interface{}, len(headerRow))
		for i, h := range headerRow {
			header[i] = h
		}
		valueRange := &sheets.ValueRange{Values: [][]interface{}{header}}
		_, err := s.sheetsService.Spreadsheets.Values.Update(
			s.spreadsheetID,
			headerRange,
			valueRange,
		).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to write headers: %w", op, err)
		}
	}

	return nil
}
