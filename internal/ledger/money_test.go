package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"100", "$100.00"},
		{"999.999", "$1,000.00"},
		{"1000000", "$1,000,000.00"},
		{"123456789.01", "$123,456,789.01"},
		{"-50", "-$50.00"},
		{"-1234.5", "-$1,234.50"},
		{"0.005", "$0.01"},
	}

	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got, "FormatMoney(%s)", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "1234.5"},
		{"1,234.50", "1234.50"},
		{"$1,234.50", "1234.50"},
		{" 500 ", "500"},
		{"1,000,000", "1000000"},
		{"-25.00", "-25.00"},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestParseAmountRejectsNonNumeric(t *testing.T) {
	for _, bad := range []string{"", "   ", "abc", "12.3.4", "$,", "1.2e"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ParseAmount(%q)", bad)
	}
}
