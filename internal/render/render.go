// Package render writes the human-readable invoice blocks shown in the
// terminal. The company identity lines are configuration, not behavior; they
// come from internal/config.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/pkg/models"
)

// Company holds the display strings printed on every invoice.
type Company struct {
	Name        string
	Address     string
	ZelleLine   string
	ZelleQRNote string
	LogoPath    string
}

// Renderer formats ledger records for terminal output.
type Renderer struct {
	company Company
}

// New returns a renderer for the given company identity.
func New(company Company) *Renderer {
	return &Renderer{company: company}
}

// Letterhead writes the company name and address block.
func (r *Renderer) Letterhead(w io.Writer) {
	fmt.Fprintln(w, r.company.Name)
	fmt.Fprintln(w, r.company.Address)
}

// InvoiceBlock writes one invoice in full: fields, balance, payment link if
// present, and the Zelle payment notice.
func (r *Renderer) InvoiceBlock(w io.Writer, invoice models.Invoice) {
	fmt.Fprintf(w, "Date: %s\n", invoice.Date)
	fmt.Fprintf(w, "PO #: %s\n", invoice.PO)
	fmt.Fprintf(w, "Description: %s\n", invoice.Description)
	fmt.Fprintf(w, "Amount: %s\n", ledger.FormatMoney(invoice.Amount))
	fmt.Fprintf(w, "Paid: %s\n", ledger.FormatMoney(invoice.Paid))
	fmt.Fprintf(w, "Balance: %s\n", ledger.FormatMoney(invoice.Balance()))
	if invoice.PaymentLink != "" {
		fmt.Fprintf(w, "Payment Link: %s\n", invoice.PaymentLink)
	}
	fmt.Fprintln(w, r.company.ZelleLine)
	fmt.Fprintln(w, r.company.ZelleQRNote)
	fmt.Fprintln(w, strings.Repeat("-", 40))
}

// InvoiceList writes the header rule followed by every invoice block.
func (r *Renderer) InvoiceList(w io.Writer, invoices []models.Invoice) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 40))
	for _, invoice := range invoices {
		r.InvoiceBlock(w, invoice)
	}
}

// OutstandingLine writes one selectable line of the payment picker. n is the
// 1-based selection number shown to the user.
func (r *Renderer) OutstandingLine(w io.Writer, n int, invoice models.Invoice) {
	fmt.Fprintf(w, "%d. %s | PO: %s | Balance: %s\n",
		n, invoice.Date, invoice.PO, ledger.FormatMoney(invoice.Balance()))
}
