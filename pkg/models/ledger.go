// Package models defines the records persisted by the invoicing ledger.
//
// The JSON field names and nesting mirror the data file produced by earlier
// versions of this tool, so an existing eien_data.json keeps loading
// unchanged. Monetary fields serialize as bare decimal numbers, not strings.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// amount/paid must stay plain JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Invoice is a single bill issued to a customer. Invoices are append-only:
// after creation the only field that changes is Paid, which accumulates
// recorded payments.
type Invoice struct {
	// Date is the invoice date as entered, intended as YYYY-MM-DD but kept
	// verbatim and never parsed.
	Date string `json:"date"`

	// PO is the customer's purchase-order reference, free text.
	PO string `json:"po"`

	// Description describes the work or services billed.
	Description string `json:"description"`

	// Amount is the total billed amount.
	Amount decimal.Decimal `json:"amount"`

	// Paid is the cumulative amount received against this invoice.
	Paid decimal.Decimal `json:"paid"`

	// PaymentLink is an optional payment URL, empty when none was given.
	PaymentLink string `json:"payment_link"`
}

// Balance returns Amount minus Paid. It can go negative when a customer
// overpays; that state is preserved, not rejected.
func (inv Invoice) Balance() decimal.Decimal {
	return inv.Amount.Sub(inv.Paid)
}

// Outstanding reports whether any balance remains on the invoice.
func (inv Invoice) Outstanding() bool {
	return inv.Balance().IsPositive()
}

// StatusFilter selects invoices by payment status.
type StatusFilter string

const (
	// FilterAll selects every invoice.
	FilterAll StatusFilter = "all"

	// FilterPaid selects invoices with balance <= 0, overpaid included.
	FilterPaid StatusFilter = "paid"

	// FilterOutstanding selects invoices with balance > 0.
	FilterOutstanding StatusFilter = "outstanding"
)

// ParseStatusFilter validates a filter name from user input.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(s) {
	case FilterAll, FilterPaid, FilterOutstanding:
		return StatusFilter(s), true
	}
	return "", false
}

// Matches reports whether the invoice passes the given filter.
func (inv Invoice) Matches(filter StatusFilter) bool {
	switch filter {
	case FilterPaid:
		return !inv.Outstanding()
	case FilterOutstanding:
		return inv.Outstanding()
	default:
		return true
	}
}

// Customer owns an ordered sequence of invoices. Order is creation order and
// is never rearranged; payment selection indexes depend on it.
type Customer struct {
	Invoices []Invoice `json:"invoices"`
}

// Ledger is the whole persisted document: customer display name, matched
// case-sensitively, to the customer's record.
type Ledger map[string]*Customer
