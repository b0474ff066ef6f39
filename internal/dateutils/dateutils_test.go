package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expectOk  bool
		expectISO string
	}{
		{"ISO", "2024-03-05", true, "2024-03-05"},
		{"ISO single digit", "2024-3-5", true, "2024-03-05"},
		{"ISO with trailing time", "2023-01-15 10:30:45", true, "2023-01-15"},
		{"compact 8 digit", "20240305", true, "2024-03-05"},
		{"compact 6 digit", "240305", true, "2024-03-05"},
		{"compact 6 digit last century", "991231", true, "1999-12-31"},
		{"dotted year first", "2024.03.05", true, "2024-03-05"},
		{"slashed year first", "2024/03/05", true, "2024-03-05"},
		{"dotted day first", "15.01.2023", true, "2023-01-15"},
		{"slashed ambiguous defaults US", "01/02/2023", true, "2023-01-02"},
		{"slashed two digit year", "03/05/24", true, "2024-03-05"},
		{"excel serial", "45000", true, "2023-03-15"},
		{"excel serial fractional", "45000.5", true, "2023-03-15"},
		{"korean long form", "2024년 3월 5일", true, "2024-03-05"},
		{"cjk long form", "2024年3月5日", true, "2024-03-05"},
		{"month name", "Mar 5, 2024", true, "2024-03-05"},
		{"month name day first", "5 Mar 2024", true, "2024-03-05"},
		{"small serial rejected", "12345", false, ""},
		{"rollover rejected", "2024-02-31", false, ""},
		{"compact rollover rejected", "20241340", false, ""},
		{"empty", "", false, ""},
		{"free text", "스타벅스", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, ok := ParseDate(tc.raw)
			if !tc.expectOk {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expectISO, ToISO(date))
		})
	}
}

func TestParseDateBareMonthDay(t *testing.T) {
	date, ok := ParseDate("3/5")
	require.True(t, ok)
	assert.Equal(t, time.Now().Year(), date.Year())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 5, date.Day())

	// A day above 12 flips the interpretation.
	date, ok = ParseDate("15/3")
	require.True(t, ok)
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 15, date.Day())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expectOk bool
		expected string
	}{
		{"hours and minutes", "14:23", true, "14:23:00"},
		{"full", "14:23:45", true, "14:23:45"},
		{"single digit hour", "9:05:07", true, "09:05:07"},
		{"padded input", " 10:00 ", true, "10:00:00"},
		{"hour out of range", "25:00", false, ""},
		{"minute out of range", "10:61", false, ""},
		{"not a time", "abc", false, ""},
		{"empty", "", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseTime(tc.raw)
			assert.Equal(t, tc.expectOk, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	assert.True(t, LooksLikeDate("2024-03-05"))
	assert.True(t, LooksLikeDate("240305"))
	assert.False(t, LooksLikeDate("10,000"))
	assert.False(t, LooksLikeDate("가맹점"))
}
