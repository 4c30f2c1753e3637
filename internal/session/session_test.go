package session

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PF6771/eien-invoice/internal/ledger"
	"github.com/PF6771/eien-invoice/internal/render"
	"github.com/PF6771/eien-invoice/internal/store"
)

var testCompany = render.Company{
	Name:        "Test Co.",
	Address:     "Nowhere 1",
	ZelleLine:   "Pay with Zelle!",
	ZelleQRNote: "(QR attached)",
}

// runSession feeds the scripted input lines to a fresh session over the
// given data file and returns everything it printed.
func runSession(t *testing.T, dataFile string, lines ...string) string {
	t.Helper()

	st := store.New(dataFile)
	doc, err := st.Load()
	require.NoError(t, err)

	svc := ledger.NewService(doc, st)
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out strings.Builder

	sess := New(svc, render.New(testCompany), in, &out)
	require.NoError(t, sess.Run())
	return out.String()
}

func TestSessionEndToEnd(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "eien_data.json")

	// Add Acme, invoice it for 500.00, pay 200.00.
	out := runSession(t, dataFile,
		"1", "Acme",
		"2", "Acme", "2024-01-01", "PO1", "Repair", "500.00", "",
		"3", "Acme", "1", "200.00",
		"4", "Acme",
		"7",
	)

	assert.Contains(t, out, "Customer Acme added.")
	assert.Contains(t, out, "Invoice created for Acme.")
	assert.Contains(t, out, "1. 2024-01-01 | PO: PO1 | Balance: $500.00")
	assert.Contains(t, out, "Payment of $200.00 recorded.")
	assert.Contains(t, out, "Balance: $300.00")

	// A fresh session over the same file sees the persisted state: pay the
	// remaining 300.00 and the invoice moves to the paid view.
	out = runSession(t, dataFile,
		"3", "Acme", "1", "300.00",
		"5", "Acme",
		"4", "Acme",
		"7",
	)

	assert.Contains(t, out, "Payment of $300.00 recorded.")
	assert.Contains(t, out, "Balance: $0.00")
	assert.Contains(t, out, "No invoices.")
}

func TestSessionReportsAndContinues(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "eien_data.json")

	out := runSession(t, dataFile,
		"1", "Acme",
		"1", "Acme", // duplicate
		"2", "Nobody", // unknown customer
		"2", "Acme", "2024-01-01", "PO1", "Repair", "abc", "", // bad amount
		"3", "Acme", // no outstanding invoices
		"9", // bad menu option
		"7",
	)

	assert.Contains(t, out, "Customer already exists.")
	assert.Contains(t, out, "Customer not found.")
	assert.Contains(t, out, "Invalid amount.")
	assert.Contains(t, out, "No outstanding invoices.")
	assert.Contains(t, out, "Invalid option.")
}

func TestSessionRejectsBadPaymentSelection(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "eien_data.json")

	out := runSession(t, dataFile,
		"1", "Acme",
		"2", "Acme", "2024-01-01", "PO1", "Repair", "500.00", "",
		"3", "Acme", "5", "100.00", // out of range
		"3", "Acme", "x", // non-numeric
		"4", "Acme",
		"7",
	)

	assert.Contains(t, out, "Invalid selection.")
	// Both rejections left the invoice untouched.
	assert.Contains(t, out, "Balance: $500.00")
	assert.NotContains(t, out, "recorded")
}

func TestSessionViewShowsInvoiceBlock(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "eien_data.json")

	out := runSession(t, dataFile,
		"1", "Acme",
		"2", "Acme", "2024-01-01", "PO1", "Repair", "1,234.50", "https://pay.example/1",
		"6", "Acme",
		"7",
	)

	assert.Contains(t, out, "Date: 2024-01-01")
	assert.Contains(t, out, "PO #: PO1")
	assert.Contains(t, out, "Description: Repair")
	assert.Contains(t, out, "Amount: $1,234.50")
	assert.Contains(t, out, "Paid: $0.00")
	assert.Contains(t, out, "Payment Link: https://pay.example/1")
	assert.Contains(t, out, "Pay with Zelle!")
	assert.Contains(t, out, "(QR attached)")
}

func TestSessionEndsOnEOF(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "eien_data.json")

	st := store.New(dataFile)
	doc, err := st.Load()
	require.NoError(t, err)

	sess := New(ledger.NewService(doc, st), render.New(testCompany), strings.NewReader(""), &strings.Builder{})
	assert.NoError(t, sess.Run())
}
