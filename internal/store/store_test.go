package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PF6771/eien-invoice/pkg/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "eien_data.json"))
}

func TestLoadMissingFileReturnsEmptyLedger(t *testing.T) {
	st := testStore(t)

	ledger, err := st.Load()
	require.NoError(t, err)
	assert.NotNil(t, ledger)
	assert.Empty(t, ledger)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := testStore(t)

	ledger := models.Ledger{
		"Acme": {Invoices: []models.Invoice{
			{
				Date:        "2024-01-01",
				PO:          "PO1",
				Description: "Repair",
				Amount:      decimal.RequireFromString("500.00"),
				Paid:        decimal.RequireFromString("200.00"),
				PaymentLink: "https://pay.example/1",
			},
			{
				Date:   "2024-02-15",
				PO:     "PO2",
				Amount: decimal.RequireFromString("1234.50"),
				Paid:   decimal.Zero,
			},
		}},
		"Globex": {Invoices: []models.Invoice{}},
	}
	require.NoError(t, st.Save(ledger))

	loaded, err := st.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	acme := loaded["Acme"]
	require.NotNil(t, acme)
	require.Len(t, acme.Invoices, 2)
	assert.Equal(t, "PO1", acme.Invoices[0].PO)
	assert.Equal(t, "Repair", acme.Invoices[0].Description)
	assert.True(t, acme.Invoices[0].Amount.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, acme.Invoices[0].Paid.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, "PO2", acme.Invoices[1].PO)
	assert.Empty(t, acme.Invoices[1].PaymentLink)

	globex := loaded["Globex"]
	require.NotNil(t, globex)
	assert.Empty(t, globex.Invoices)
}

func TestSaveWritesCompatibleWireFormat(t *testing.T) {
	st := testStore(t)

	ledger := models.Ledger{
		"Acme": {Invoices: []models.Invoice{{
			Date:   "2024-01-01",
			PO:     "PO1",
			Amount: decimal.RequireFromString("500.00"),
			Paid:   decimal.Zero,
		}}},
	}
	require.NoError(t, st.Save(ledger))

	raw, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	// Field names and nesting are fixed for compatibility with existing data
	// files, and amounts must be bare numbers.
	var doc map[string]map[string][]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))

	invoice := doc["Acme"]["invoices"][0]
	for _, field := range []string{"date", "po", "description", "amount", "paid", "payment_link"} {
		assert.Contains(t, invoice, field)
	}
	var amount, paid float64
	require.NoError(t, json.Unmarshal(invoice["amount"], &amount), "amount must serialize as a bare number")
	require.NoError(t, json.Unmarshal(invoice["paid"], &paid), "paid must serialize as a bare number")
	assert.Equal(t, 500.0, amount)
	assert.Equal(t, 0.0, paid)
}

func TestLoadLegacyDocument(t *testing.T) {
	// A file written by the earlier tool: floats, no surrounding structure.
	st := testStore(t)
	legacy := `{
  "Acme": {
    "invoices": [
      {
        "date": "2024-01-01",
        "po": "PO1",
        "description": "Repair",
        "amount": 500.0,
        "paid": 200.5,
        "payment_link": ""
      }
    ]
  }
}`
	require.NoError(t, os.WriteFile(st.Path(), []byte(legacy), 0o600))

	loaded, err := st.Load()
	require.NoError(t, err)
	acme := loaded["Acme"]
	require.NotNil(t, acme)
	require.Len(t, acme.Invoices, 1)
	assert.True(t, acme.Invoices[0].Amount.Equal(decimal.RequireFromString("500")))
	assert.True(t, acme.Invoices[0].Paid.Equal(decimal.RequireFromString("200.5")))
}

func TestLoadCorruptDocument(t *testing.T) {
	st := testStore(t)
	corrupt := []byte(`{"Acme": {"invoices": [`)
	require.NoError(t, os.WriteFile(st.Path(), corrupt, 0o600))

	_, err := st.Load()
	require.ErrorIs(t, err, ErrCorruptDocument)

	// The broken file stays as-is for inspection.
	raw, readErr := os.ReadFile(st.Path())
	require.NoError(t, readErr)
	assert.Equal(t, corrupt, raw)
}

func TestLoadRejectsNullDocument(t *testing.T) {
	st := testStore(t)
	require.NoError(t, os.WriteFile(st.Path(), []byte("null"), 0o600))

	_, err := st.Load()
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestSaveReplacesAtomically(t *testing.T) {
	st := testStore(t)

	require.NoError(t, st.Save(models.Ledger{"A": {Invoices: []models.Invoice{}}}))
	require.NoError(t, st.Save(models.Ledger{"B": {Invoices: []models.Invoice{}}}))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Contains(t, loaded, "B")
	assert.NotContains(t, loaded, "A")

	// No temp files left behind after a successful save.
	entries, err := os.ReadDir(filepath.Dir(st.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(st.Path()), entries[0].Name())
}
