// Package amountutils standardizes the monetary cell formats found in
// statement exports: thousands separators, currency symbols and codes, unit
// words, quote wrapping and parenthesized negatives.
package amountutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyRunes = regexp.MustCompile(`[€$£¥₩₣₤₹₽฿\s]`)
	currencyCodes = regexp.MustCompile(`(?i)\b(KRW|USD|EUR|JPY|CHF|GBP)\b`)
	unitWords     = regexp.MustCompile(`[원円]`)
	numericShape  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Parse converts a raw cell value to a decimal amount. Empty cells and bare
// dashes normalize to zero; the boolean is false only when the cell carries
// something that cannot be read as a number at all.
func Parse(raw string) (decimal.Decimal, bool) {
	s := Standardize(raw)
	if s == "" {
		return decimal.Zero, true
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Standardize rewrites a raw amount cell into a form decimal.NewFromString
// accepts. It returns "" for cells that mean "no value" (empty, dash).
func Standardize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	if s == "" || s == "-" || s == "–" || s == "—" {
		return ""
	}

	// Parenthesis wrapping marks a negative value in many card exports.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = currencyCodes.ReplaceAllString(s, "")
	s = currencyRunes.ReplaceAllString(s, "")
	s = unitWords.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}
	if negative && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// LooksLikeAmount reports whether a cell standardizes to a plain numeric
// value. Used by the extractor and the classifier's content fallback.
func LooksLikeAmount(raw string) bool {
	s := Standardize(raw)
	return s != "" && numericShape.MatchString(s)
}
