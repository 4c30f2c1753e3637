package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func inv(amount, paid string) Invoice {
	return Invoice{
		Amount: decimal.RequireFromString(amount),
		Paid:   decimal.RequireFromString(paid),
	}
}

func TestBalance(t *testing.T) {
	assert.True(t, inv("100", "0").Balance().Equal(decimal.RequireFromString("100")))
	assert.True(t, inv("100", "40.5").Balance().Equal(decimal.RequireFromString("59.5")))
	assert.True(t, inv("100", "150").Balance().Equal(decimal.RequireFromString("-50")),
		"overpayment yields a negative balance")
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name        string
		invoice     Invoice
		paid        bool
		outstanding bool
	}{
		{"unpaid", inv("100", "0"), false, true},
		{"partial", inv("100", "99.99"), false, true},
		{"exactly paid", inv("100", "100"), true, false},
		{"overpaid", inv("100", "150"), true, false},
		{"zero amount", inv("0", "0"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.invoice.Matches(FilterAll))
			assert.Equal(t, tt.paid, tt.invoice.Matches(FilterPaid))
			assert.Equal(t, tt.outstanding, tt.invoice.Matches(FilterOutstanding))
		})
	}
}

func TestParseStatusFilter(t *testing.T) {
	for _, valid := range []string{"all", "paid", "outstanding"} {
		filter, ok := ParseStatusFilter(valid)
		assert.True(t, ok)
		assert.Equal(t, StatusFilter(valid), filter)
	}

	for _, invalid := range []string{"", "Paid", "open", "ALL"} {
		_, ok := ParseStatusFilter(invalid)
		assert.False(t, ok, "ParseStatusFilter(%q)", invalid)
	}
}
