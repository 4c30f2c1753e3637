// Package ledger implements the invoicing ledger operations: registering
// customers, creating invoices, filtering them by payment status and
// recording payments.
//
// Every mutating operation follows the same single-step protocol: validate,
// mutate the in-memory ledger, persist the whole document. When persisting
// fails the in-memory change is rolled back, so memory never drifts ahead of
// the data file.
package ledger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/pkg/models"
)

// Persister writes the full ledger document to durable storage.
type Persister interface {
	Save(ledger models.Ledger) error
}

// Service holds the in-memory ledger for the process lifetime and persists
// it through the store after every mutation. It is single-writer by design;
// nothing here is safe for concurrent use.
type Service struct {
	ledger models.Ledger
	store  Persister
	log    zerolog.Logger
}

// NewService creates a service over an already-loaded ledger.
func NewService(ledger models.Ledger, store Persister) *Service {
	if ledger == nil {
		ledger = models.Ledger{}
	}
	return &Service{
		ledger: ledger,
		store:  store,
		log:    logger.WithComponent("ledger"),
	}
}

// InvoiceDraft carries the user-entered fields of a new invoice. Amount is
// the raw input string; it is parsed by CreateInvoice so the caller does not
// deal with separators.
type InvoiceDraft struct {
	Date        string
	PO          string
	Description string
	Amount      string
	PaymentLink string
}

// AddCustomer registers a new customer with an empty invoice sequence and
// persists the ledger. The name is trimmed of surrounding whitespace but
// otherwise taken verbatim; matching is case-sensitive. Returns the stored
// name.
func (s *Service) AddCustomer(name string) (string, error) {
	const op = "AddCustomer"

	// The name is taken verbatim after trimming; an empty name is accepted,
	// matching the permissiveness of the rest of the data entry.
	name = strings.TrimSpace(name)
	if _, ok := s.ledger[name]; ok {
		return "", opErr(op, ErrCustomerExists, name)
	}

	s.ledger[name] = &models.Customer{Invoices: []models.Invoice{}}
	if err := s.store.Save(s.ledger); err != nil {
		delete(s.ledger, name)
		return "", opErr(op, err, "persist ledger")
	}

	s.log.Info().Str("customer", name).Msg("Customer added")
	return name, nil
}

// FindCustomer looks up a customer by exact name.
func (s *Service) FindCustomer(name string) (*models.Customer, error) {
	customer, ok := s.ledger[strings.TrimSpace(name)]
	if !ok {
		return nil, opErr("FindCustomer", ErrCustomerNotFound, name)
	}
	return customer, nil
}

// CustomerNames returns every registered customer name, unordered.
func (s *Service) CustomerNames() []string {
	names := make([]string, 0, len(s.ledger))
	for name := range s.ledger {
		names = append(names, name)
	}
	return names
}

// CreateInvoice appends a new invoice to an existing customer and persists
// the ledger. The draft amount may contain thousands separators; a
// non-numeric amount rejects the draft with no mutation. The new invoice
// starts with paid = 0.
func (s *Service) CreateInvoice(name string, draft InvoiceDraft) (models.Invoice, error) {
	const op = "CreateInvoice"

	name = strings.TrimSpace(name)
	customer, ok := s.ledger[name]
	if !ok {
		return models.Invoice{}, opErr(op, ErrCustomerNotFound, name)
	}

	amount, err := ParseAmount(draft.Amount)
	if err != nil {
		return models.Invoice{}, opErr(op, err, "")
	}

	invoice := models.Invoice{
		Date:        strings.TrimSpace(draft.Date),
		PO:          strings.TrimSpace(draft.PO),
		Description: strings.TrimSpace(draft.Description),
		Amount:      amount,
		Paid:        decimal.Zero,
		PaymentLink: strings.TrimSpace(draft.PaymentLink),
	}

	customer.Invoices = append(customer.Invoices, invoice)
	if err := s.store.Save(s.ledger); err != nil {
		customer.Invoices = customer.Invoices[:len(customer.Invoices)-1]
		return models.Invoice{}, opErr(op, err, "persist ledger")
	}

	s.log.Info().
		Str("customer", name).
		Str("po", invoice.PO).
		Str("amount", invoice.Amount.String()).
		Msg("Invoice created")
	return invoice, nil
}

// ListInvoices returns the customer's invoices matching the filter, in
// creation order. An empty result is not an error.
func (s *Service) ListInvoices(name string, filter models.StatusFilter) ([]models.Invoice, error) {
	customer, err := s.FindCustomer(name)
	if err != nil {
		return nil, err
	}

	var matched []models.Invoice
	for _, invoice := range customer.Invoices {
		if invoice.Matches(filter) {
			matched = append(matched, invoice)
		}
	}
	return matched, nil
}

// OutstandingInvoices returns the customer's invoices with a positive
// balance, in creation order. Payment selection indexes refer to this list.
func (s *Service) OutstandingInvoices(name string) ([]models.Invoice, error) {
	return s.ListInvoices(name, models.FilterOutstanding)
}

// PaymentReceipt describes a successfully recorded payment.
type PaymentReceipt struct {
	Customer string
	Amount   decimal.Decimal
	Invoice  models.Invoice // post-payment state
}

// RecordPayment applies a payment to one of the customer's outstanding
// invoices. selection is 1-based against the outstanding list as presented
// to the user; an out-of-range selection or a non-numeric amount rejects the
// payment with no mutation. The payment is added to the invoice's paid total
// without an upper bound, so overpaying drives the balance negative.
func (s *Service) RecordPayment(name string, selection int, rawAmount string) (PaymentReceipt, error) {
	const op = "RecordPayment"

	name = strings.TrimSpace(name)
	customer, ok := s.ledger[name]
	if !ok {
		return PaymentReceipt{}, opErr(op, ErrCustomerNotFound, name)
	}

	// Map the 1-based outstanding selection back to a position in the full
	// invoice sequence.
	var outstanding []int
	for i, invoice := range customer.Invoices {
		if invoice.Outstanding() {
			outstanding = append(outstanding, i)
		}
	}
	if len(outstanding) == 0 {
		return PaymentReceipt{}, opErr(op, ErrNoInvoices, name)
	}
	if selection < 1 || selection > len(outstanding) {
		return PaymentReceipt{}, opErr(op, ErrInvalidSelection, "")
	}

	payment, err := ParseAmount(rawAmount)
	if err != nil {
		return PaymentReceipt{}, opErr(op, err, "")
	}

	target := &customer.Invoices[outstanding[selection-1]]
	target.Paid = target.Paid.Add(payment)
	if err := s.store.Save(s.ledger); err != nil {
		target.Paid = target.Paid.Sub(payment)
		return PaymentReceipt{}, opErr(op, err, "persist ledger")
	}

	s.log.Info().
		Str("customer", name).
		Str("po", target.PO).
		Str("payment", payment.String()).
		Str("balance", target.Balance().String()).
		Msg("Payment recorded")
	return PaymentReceipt{Customer: name, Amount: payment, Invoice: *target}, nil
}
