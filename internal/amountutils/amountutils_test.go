package amountutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expectOk bool
		expected string
	}{
		{"plain", "5000", true, "5000"},
		{"thousands separator", "10,000", true, "10000"},
		{"negative", "-2500", true, "-2500"},
		{"parenthesized negative", "(5,000)", true, "-5000"},
		{"won symbol", "₩12,345", true, "12345"},
		{"korean unit word", "5000원", true, "5000"},
		{"currency code", "123 KRW", true, "123"},
		{"apostrophe separator", "1'234.50", true, "1234.5"},
		{"quoted", `"10,000"`, true, "10000"},
		{"empty means zero", "", true, "0"},
		{"dash means zero", "-", true, "0"},
		{"em dash means zero", "—", true, "0"},
		{"free text", "스타벅스", false, "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, ok := Parse(tc.raw)
			if !tc.expectOk {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expected, amount.String())
		})
	}
}

func TestStandardize(t *testing.T) {
	assert.Equal(t, "", Standardize("  "))
	assert.Equal(t, "", Standardize(`"-"`))
	assert.Equal(t, "-300", Standardize("(300)"))
	assert.Equal(t, "-300", Standardize("(-300)"))
	assert.Equal(t, "1500", Standardize("1,500 원"))
}

func TestLooksLikeAmount(t *testing.T) {
	assert.True(t, LooksLikeAmount("10,000"))
	assert.True(t, LooksLikeAmount("(5,000)"))
	assert.True(t, LooksLikeAmount("₩1,234"))
	assert.False(t, LooksLikeAmount(""))
	assert.False(t, LooksLikeAmount("-"))
	assert.False(t, LooksLikeAmount("가맹점"))
	assert.False(t, LooksLikeAmount("2024-03-05"))
}
