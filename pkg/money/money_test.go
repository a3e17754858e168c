package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"brl with grouping", "1.234,56", "1234.56"},
		{"brl plain", "56,78", "56.78"},
		{"brl thousands only", "1.000,00", "1000"},
		{"negative with space", "- 150,00", "-150"},
		{"negative double space", "-  150,00", "-150"},
		{"padded", "  1.000,00  ", "1000"},
		{"plain decimal", "1234.56", "1234.56"},
		{"us grouping", "1,234.56", "1234.56"},
		{"integer", "42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "12,34,56x"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormat(t *testing.T) {
	d := decimal.RequireFromString("1234.56")

	assert.Equal(t, "1.234,56", Format(d, LocalePtBR))
	assert.Equal(t, "1234.56", Format(d, LocaleEnUS))
}

func TestFormat_Negative(t *testing.T) {
	d := decimal.RequireFromString("-2249")

	assert.Equal(t, "-2.249,00", Format(d, LocalePtBR))
	assert.Equal(t, "-2249.00", Format(d, LocaleEnUS))
}

// Canonical BRL inputs survive a parse/format round trip.
func TestParseFormatRoundTrip(t *testing.T) {
	d, err := Parse("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1.234,56", Format(d, LocalePtBR))
	assert.Equal(t, "1234.56", Format(d, LocaleEnUS))
}

func TestParseLocale(t *testing.T) {
	got, err := ParseLocale(" PT-BR ")
	require.NoError(t, err)
	assert.Equal(t, LocalePtBR, got)

	_, err = ParseLocale("fr-fr")
	assert.Error(t, err)
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1055), Cents(decimal.RequireFromString("10.55")))
	assert.Equal(t, int64(1000), Cents(decimal.RequireFromString("10.004")))
	assert.Equal(t, int64(-1550), Cents(decimal.RequireFromString("-15.50")))
}
