// Package session runs the interactive menu loop over the ledger.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/internal/render"
	"github.com/PF6771/eien-invoice/pkg/models"
)

// Session drives one interactive invoicing session: it prompts on out, reads
// answers from in, and dispatches to the ledger service. Every reported
// error returns control to the menu; only option 7 and an input EOF end the
// session.
type Session struct {
	svc  *ledger.Service
	rend *render.Renderer
	in   *bufio.Scanner
	out  io.Writer
	log  zerolog.Logger
}

// New creates a session reading from in and writing to out.
func New(svc *ledger.Service, rend *render.Renderer, in io.Reader, out io.Writer) *Session {
	return &Session{
		svc:  svc,
		rend: rend,
		in:   bufio.NewScanner(in),
		out:  out,
		log:  logger.WithComponent("session"),
	}
}

// Run loops on the menu until the user exits or input ends.
func (s *Session) Run() error {
	for {
		fmt.Fprintln(s.out, "\n=== EIEN MOBILE INVOICING ===")
		fmt.Fprintln(s.out, "1. Add Customer")
		fmt.Fprintln(s.out, "2. Create Invoice")
		fmt.Fprintln(s.out, "3. Record Payment")
		fmt.Fprintln(s.out, "4. View Outstanding Invoices")
		fmt.Fprintln(s.out, "5. View Paid Invoices")
		fmt.Fprintln(s.out, "6. View All Invoices")
		fmt.Fprintln(s.out, "7. Exit")

		choice, ok := s.prompt("Select option: ")
		if !ok {
			return s.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = s.addCustomer()
		case "2":
			err = s.createInvoice()
		case "3":
			err = s.recordPayment()
		case "4":
			err = s.viewInvoices(models.FilterOutstanding)
		case "5":
			err = s.viewInvoices(models.FilterPaid)
		case "6":
			err = s.viewInvoices(models.FilterAll)
		case "7":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
			continue
		}

		if err != nil {
			// A persistence failure is the one thing the session cannot
			// recover from; everything else was already reported.
			return err
		}
	}
}

// prompt writes the prompt and reads one trimmed line. ok is false on EOF.
func (s *Session) prompt(text string) (string, bool) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// report prints a user-level message for a recoverable ledger error and
// swallows it. Unknown errors (persistence failures) are passed through.
func (s *Session) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrCustomerExists):
		fmt.Fprintln(s.out, "Customer already exists.")
	case errors.Is(err, ledger.ErrCustomerNotFound):
		fmt.Fprintln(s.out, "Customer not found.")
	case errors.Is(err, ledger.ErrInvalidAmount):
		fmt.Fprintln(s.out, "Invalid amount.")
	case errors.Is(err, ledger.ErrInvalidSelection):
		fmt.Fprintln(s.out, "Invalid selection.")
	case errors.Is(err, ledger.ErrNoInvoices):
		fmt.Fprintln(s.out, "No outstanding invoices.")
	default:
		s.log.Error().Err(err).Msg("Session operation failed")
		return err
	}
	return nil
}

func (s *Session) addCustomer() error {
	name, ok := s.prompt("Enter customer name: ")
	if !ok {
		return nil
	}

	stored, err := s.svc.AddCustomer(name)
	if err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Customer %s added.\n", stored)
	return nil
}

func (s *Session) createInvoice() error {
	name, ok := s.prompt("Customer Name (must match): ")
	if !ok {
		return nil
	}
	if _, err := s.svc.FindCustomer(name); err != nil {
		return s.report(err)
	}

	var draft ledger.InvoiceDraft
	if draft.Date, ok = s.prompt("Invoice Date (YYYY-MM-DD): "); !ok {
		return nil
	}
	if draft.PO, ok = s.prompt("PO Number: "); !ok {
		return nil
	}
	if draft.Description, ok = s.prompt("Description of work/services: "); !ok {
		return nil
	}
	if draft.Amount, ok = s.prompt("Total Amount ($): "); !ok {
		return nil
	}
	if draft.PaymentLink, ok = s.prompt("Payment Link (or leave blank): "); !ok {
		return nil
	}

	if _, err := s.svc.CreateInvoice(name, draft); err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Invoice created for %s.\n", name)
	return nil
}

func (s *Session) recordPayment() error {
	name, ok := s.prompt("Customer Name: ")
	if !ok {
		return nil
	}

	outstanding, err := s.svc.OutstandingInvoices(name)
	if err != nil {
		return s.report(err)
	}
	if len(outstanding) == 0 {
		fmt.Fprintln(s.out, "No outstanding invoices.")
		return nil
	}

	fmt.Fprintln(s.out, "\nOutstanding Invoices:")
	for i, invoice := range outstanding {
		s.rend.OutstandingLine(s.out, i+1, invoice)
	}

	raw, ok := s.prompt("Select invoice number: ")
	if !ok {
		return nil
	}
	selection, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid selection.")
		return nil
	}

	amount, ok := s.prompt("Enter payment amount: ")
	if !ok {
		return nil
	}

	receipt, err := s.svc.RecordPayment(name, selection, amount)
	if err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.out, "Payment of %s recorded.\n", ledger.FormatMoney(receipt.Amount))
	return nil
}

func (s *Session) viewInvoices(filter models.StatusFilter) error {
	name, ok := s.prompt("Customer Name: ")
	if !ok {
		return nil
	}

	invoices, err := s.svc.ListInvoices(name, filter)
	if err != nil {
		return s.report(err)
	}
	if len(invoices) == 0 {
		fmt.Fprintln(s.out, "No invoices.")
		return nil
	}

	s.rend.InvoiceList(s.out, invoices)
	return nil
}
